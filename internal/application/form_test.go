package application

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsite/internal/domain/entity"
	"confsite/pkg/cryptox"
)

func testEncryptor() *cryptox.Encryptor {
	return cryptox.NewEncryptor("test-secret", "test-salt")
}

func existingUser() *entity.User {
	return &entity.User{
		Login:     "jdoe",
		Firstname: "Jane",
		Lastname:  "Doe",
		Email:     "old-ciphertext",
		Role:      entity.RoleStaff,
		LegacyID:  "42",
		Token:     "ABCDEF",
		TokenExpiration: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Description: map[entity.Language]string{
			entity.French:  "ancienne bio",
			entity.English: "old bio",
		},
	}
}

func validForm() url.Values {
	form := url.Values{}
	form.Set("firstname", "Jane")
	form.Set("lastname", "Doe")
	form.Set("email", "jane@doe.example")
	form.Set("company", "ACME")
	form.Set("description-fr", "une bio en **markdown**")
	form.Set("description-en", "a bio in **markdown**")
	form.Set("link0Name", "GH")
	form.Set("link0Url", "https://github.com/jdoe")
	return form
}

func TestApplyProfileEdits_Valid(t *testing.T) {
	t.Parallel()

	enc := testEncryptor()
	existing := existingUser()

	candidate, errs, err := ApplyProfileEdits(existing, ParseProfileForm(validForm()), enc)
	require.NoError(t, err)
	assert.Empty(t, errs)

	// Non-editable fields are carried forward untouched.
	assert.Equal(t, existing.Login, candidate.Login)
	assert.Equal(t, existing.Role, candidate.Role)
	assert.Equal(t, existing.LegacyID, candidate.LegacyID)
	assert.Equal(t, existing.Token, candidate.Token)
	assert.Equal(t, existing.TokenExpiration, candidate.TokenExpiration)

	// The email is stored encrypted but decryptable.
	plain, err := enc.Decrypt(candidate.Email)
	require.NoError(t, err)
	assert.Equal(t, "jane@doe.example", plain)
	assert.Equal(t, cryptox.EmailHash("jane@doe.example"), candidate.EmailHash)

	require.Len(t, candidate.Links, 1)
	assert.Equal(t, "GH", candidate.Links[0].Name)

	// Both description entries are always present.
	assert.Contains(t, candidate.Description, entity.French)
	assert.Contains(t, candidate.Description, entity.English)
}

func TestApplyProfileEdits_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"firstname", "lastname", "email", "description-fr", "description-en"} {
		form := validForm()
		form.Set(field, "  ")

		_, errs, err := ApplyProfileEdits(existingUser(), ParseProfileForm(form), testEncryptor())
		require.NoError(t, err)
		assert.Equal(t, "required", errs[field], "field %s", field)
	}
}

func TestApplyProfileEdits_AllErrorsReported(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Set("firstname", "")
	form.Set("email", "not-an-email")
	form.Set("photoUrl", "::bad")

	_, errs, err := ApplyProfileEdits(existingUser(), ParseProfileForm(form), testEncryptor())
	require.NoError(t, err)
	assert.Equal(t, "required", errs["firstname"])
	assert.Equal(t, "invalid-email", errs["email"])
	assert.Equal(t, "invalid-url", errs["photoUrl"])
}

func TestApplyProfileEdits_LengthLimits(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Set("firstname", strings.Repeat("a", 31))
	form.Set("company", strings.Repeat("b", 61))

	_, errs, err := ApplyProfileEdits(existingUser(), ParseProfileForm(form), testEncryptor())
	require.NoError(t, err)
	assert.Equal(t, "too-long", errs["firstname"])
	assert.Equal(t, "too-long", errs["company"])
}

func TestApplyProfileEdits_LinkErrorsKeyedByPosition(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Set("link1Name", strings.Repeat("x", 31))
	form.Set("link1Url", "https://ok.example")
	form.Set("link2Name", "fine")
	form.Set("link2Url", "not a url")

	_, errs, err := ApplyProfileEdits(existingUser(), ParseProfileForm(form), testEncryptor())
	require.NoError(t, err)
	// Positions are 1-based over the extracted links, in index order.
	assert.Equal(t, "too-long", errs["link-name-2"])
	assert.Equal(t, "invalid-url", errs["link-url-3"])
}

func TestApplyProfileEdits_SanitizesDescriptions(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Set("description-en", "hello <script>alert(1)</script> world")

	candidate, errs, err := ApplyProfileEdits(existingUser(), ParseProfileForm(form), testEncryptor())
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.NotContains(t, candidate.Description[entity.English], "<script>")
	assert.Contains(t, candidate.Description[entity.English], "hello")
}

func TestApplyProfileEdits_EmptyCompanyAllowed(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Del("company")

	candidate, errs, err := ApplyProfileEdits(existingUser(), ParseProfileForm(form), testEncryptor())
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "", candidate.Company)
}
