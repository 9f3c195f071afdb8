package application

import (
	"context"
	"errors"
	"strconv"

	"confsite/internal/domain/entity"
	"confsite/internal/domain/repository"
)

var errNotFound = errors.New("not found")

// fakeUserRepo is an in-memory UserRepository for service tests. The email
// index maps plaintext emails to logins, mirroring the hash lookup the real
// implementation does.
type fakeUserRepo struct {
	users      map[string]*entity.User
	emailIndex map[string]string
	saved      []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      map[string]*entity.User{},
		emailIndex: map[string]string{},
	}
}

func (f *fakeUserRepo) add(u *entity.User, plaintextEmail string) {
	cp := *u
	f.users[u.Login] = &cp
	if plaintextEmail != "" {
		f.emailIndex[plaintextEmail] = u.Login
	}
}

func (f *fakeUserRepo) FindOne(_ context.Context, login string) (*entity.User, error) {
	if u, ok := f.users[login]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) FindByLegacyID(_ context.Context, id int64) (*entity.User, error) {
	want := strconv.FormatInt(id, 10)
	for _, u := range f.users {
		if u.LegacyID == want {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if login, ok := f.emailIndex[email]; ok {
		return f.FindOne(ctx, login)
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByRoles(_ context.Context, roles ...entity.Role) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindOneByRoles(ctx context.Context, login string, roles ...entity.Role) (*entity.User, error) {
	u, err := f.FindOne(ctx, login)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) Save(_ context.Context, u *entity.User) error {
	cp := *u
	f.users[u.Login] = &cp
	f.saved = append(f.saved, u.Login)
	return nil
}

// fakeTalkRepo returns canned talks for any speaker in its map.
type fakeTalkRepo struct {
	talks map[string][]entity.Talk
}

func (f *fakeTalkRepo) FindBySpeakerID(_ context.Context, logins []string) ([]entity.Talk, error) {
	var out []entity.Talk
	for _, l := range logins {
		out = append(out, f.talks[l]...)
	}
	return out, nil
}

var (
	_ repository.UserRepository = (*fakeUserRepo)(nil)
	_ repository.TalkRepository = (*fakeTalkRepo)(nil)
)
