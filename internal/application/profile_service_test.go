package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsite/internal/domain/entity"
)

func newTestProfileService(repo *fakeUserRepo, talks *fakeTalkRepo, rdb *redis.Client) *ProfileService {
	if talks == nil {
		talks = &fakeTalkRepo{}
	}
	return NewProfileService(repo, talks, testEncryptor(), rdb, nil, "", nil)
}

func TestFindByIdentifier_LegacyID(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{Login: "gehel", LegacyID: "37"}, "")

	svc := newTestProfileService(repo, nil, nil)

	u, err := svc.FindByIdentifier(context.Background(), "37")
	require.NoError(t, err)
	assert.Equal(t, "gehel", u.Login)
}

func TestFindByIdentifier_Login(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{Login: "jdoe"}, "")

	svc := newTestProfileService(repo, nil, nil)

	u, err := svc.FindByIdentifier(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", u.Login)
}

// A numeric-looking identifier that matches no legacy id still falls back to
// the login lookup, and an all-digits login remains reachable that way.
func TestFindByIdentifier_NumericLoginFallback(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{Login: "12345"}, "")

	svc := newTestProfileService(repo, nil, nil)

	u, err := svc.FindByIdentifier(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", u.Login)
}

func TestFindByIdentifier_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestProfileService(newFakeUserRepo(), nil, nil)

	_, err := svc.FindByIdentifier(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByIdentifier_EscapedLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{Login: "jean dupont"}, "")

	svc := newTestProfileService(repo, nil, nil)

	u, err := svc.FindByIdentifier(context.Background(), "jean%20dupont")
	require.NoError(t, err)
	assert.Equal(t, "jean dupont", u.Login)
}

func TestSaveProfile_PersistsOnlyWhenValid(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	existing := existingUser()
	repo.add(existing, "")

	svc := newTestProfileService(repo, nil, nil)

	// Invalid submission: candidate comes back for re-rendering, nothing saved.
	form := validForm()
	form.Set("firstname", "")
	candidate, errs, err := svc.SaveProfile(context.Background(), existing, ParseProfileForm(form))
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "required", errs["firstname"])
	assert.Empty(t, repo.saved)

	// Valid submission persists exactly once.
	candidate, errs, err = svc.SaveProfile(context.Background(), existing, ParseProfileForm(validForm()))
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"jdoe"}, repo.saved)
	assert.Equal(t, "Jane", repo.users["jdoe"].Firstname)
	assert.Equal(t, candidate.Email, repo.users["jdoe"].Email)
}

func TestSaveProfile_Idempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	existing := existingUser()
	repo.add(existing, "")

	svc := newTestProfileService(repo, nil, nil)

	first, _, err := svc.SaveProfile(context.Background(), existing, ParseProfileForm(validForm()))
	require.NoError(t, err)
	second, _, err := svc.SaveProfile(context.Background(), first, ParseProfileForm(validForm()))
	require.NoError(t, err)

	assert.Equal(t, first.Firstname, second.Firstname)
	assert.Equal(t, first.Links, second.Links)
	assert.Len(t, repo.saved, 2)
}

func TestSaveProfile_InvalidatesCache(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := newFakeUserRepo()
	existing := existingUser()
	repo.add(existing, "")

	svc := newTestProfileService(repo, nil, rdb)

	// Prime the cache through the read path.
	_, err := svc.FindByIdentifier(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.True(t, mr.Exists("user:profile:jdoe"))

	_, errs, err := svc.SaveProfile(context.Background(), existing, ParseProfileForm(validForm()))
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.False(t, mr.Exists("user:profile:jdoe"))
}

func TestFindOneCached_ServesFromCache(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := newFakeUserRepo()
	repo.add(&entity.User{Login: "jdoe", Firstname: "Jane"}, "")

	svc := newTestProfileService(repo, nil, rdb)

	_, err := svc.FindByIdentifier(context.Background(), "jdoe")
	require.NoError(t, err)

	// Mutate the backing store; the cached copy is served until it expires.
	repo.users["jdoe"].Firstname = "Changed"
	u, err := svc.FindByIdentifier(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Firstname)

	mr.FastForward(11 * time.Minute)
	u, err = svc.FindByIdentifier(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Changed", u.Firstname)
}

func TestTalksFor(t *testing.T) {
	t.Parallel()

	talks := &fakeTalkRepo{talks: map[string][]entity.Talk{
		"gehel": {{ID: "t1", Title: "Scaling search"}},
	}}
	svc := newTestProfileService(newFakeUserRepo(), talks, nil)

	got, err := svc.TalksFor(context.Background(), "gehel")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Scaling search", got[0].Title)
}

func TestDecryptEmail(t *testing.T) {
	t.Parallel()

	svc := newTestProfileService(newFakeUserRepo(), nil, nil)

	ct, err := svc.Crypto.Encrypt("jane@doe.example")
	require.NoError(t, err)

	assert.Equal(t, "jane@doe.example", svc.DecryptEmail(&entity.User{Email: ct}))
	assert.Equal(t, "", svc.DecryptEmail(&entity.User{Email: ""}))
	assert.Equal(t, "", svc.DecryptEmail(&entity.User{Email: "garbage"}))
}
