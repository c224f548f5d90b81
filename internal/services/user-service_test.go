package services

import (
	"sync"
	"testing"
	"time"

	"github.com/SilverSkills/user_service/internal/domain"
	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/SilverSkills/user_service/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "sunflower42"

var (
	hashOnce sync.Once
	testHash string
)

// bcrypt is deliberately slow, hash the shared test password once
func passwordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := helper.Auth{}.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		testHash = h
	})
	return testHash
}

type userFixture struct {
	users    *fakeUserRepo
	skills   *fakeSkillRepo
	producer *fakeProducer
	svc      UserService
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	users := newFakeUserRepo()
	skills := newFakeSkillRepo()
	producer := &fakeProducer{}

	return &userFixture{
		users:    users,
		skills:   skills,
		producer: producer,
		svc:      NewUserService(users, skills, helper.SetupAuth("test-secret"), producer),
	}
}

func (f *userFixture) addUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u, _ := f.users.CreateUser(&domain.User{
		Email:              email,
		Name:               "Test User",
		PasswordHash:       passwordHash(t),
		VerificationStatus: domain.VerificationUnverified,
	})
	return u
}

// AUTH

func TestSignupNormalizesEmail(t *testing.T) {
	f := newUserFixture(t)

	u, err := f.svc.Signup(dto.SignupRequest{
		Name:     "  Mabel  ",
		Email:    "  Mabel@Example.COM ",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, "mabel@example.com", u.Email)
	assert.Equal(t, "Mabel", u.Name)
	assert.Equal(t, domain.VerificationUnverified, u.VerificationStatus)
	assert.NotEqual(t, testPassword, u.PasswordHash)
	assert.Equal(t, []string{"user.registered"}, f.producer.keys)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	f.addUser(t, "mabel@example.com")

	_, err := f.svc.Signup(dto.SignupRequest{
		Name:     "Other",
		Email:    "MABEL@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupShortPassword(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.Signup(dto.SignupRequest{
		Name:     "Mabel",
		Email:    "mabel@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginSuccess(t *testing.T) {
	f := newUserFixture(t)
	f.addUser(t, "mabel@example.com")

	u, err := f.svc.Login(dto.LoginRequest{Email: "Mabel@Example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "mabel@example.com", u.Email)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := newUserFixture(t)
	f.addUser(t, "mabel@example.com")

	_, errUnknown := f.svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: testPassword})
	_, errWrong := f.svc.Login(dto.LoginRequest{Email: "mabel@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	for i := 0; i < 5; i++ {
		_, err := f.svc.Login(dto.LoginRequest{Email: u.Email, Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	stored, err := f.users.FindUserById(u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LockoutUntil)
	// the counter restarts once the lock lands
	assert.Equal(t, 0, stored.FailedLoginAttempts)

	// even the right password bounces while locked
	_, err = f.svc.Login(dto.LoginRequest{Email: u.Email, Password: testPassword})
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	assert.GreaterOrEqual(t, locked.RemainingMinutes, 1)
	assert.LessOrEqual(t, locked.RemainingMinutes, 15)
}

func TestLoginSuccessClearsCounters(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	for i := 0; i < 3; i++ {
		_, _ = f.svc.Login(dto.LoginRequest{Email: u.Email, Password: "wrong-password"})
	}

	_, err := f.svc.Login(dto.LoginRequest{Email: u.Email, Password: testPassword})
	require.NoError(t, err)

	stored, err := f.users.FindUserById(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FailedLoginAttempts)
	assert.Nil(t, stored.LockoutUntil)
}

func TestLoginExpiredLockoutAllowsRetry(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	past := time.Now().Add(-time.Minute)
	stored := f.users.users[u.ID]
	stored.LockoutUntil = &past

	_, err := f.svc.Login(dto.LoginRequest{Email: u.Email, Password: testPassword})
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	err := f.svc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-pass",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePasswordResetsLockout(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	future := time.Now().Add(10 * time.Minute)
	stored := f.users.users[u.ID]
	stored.FailedLoginAttempts = 3
	stored.LockoutUntil = &future

	err := f.svc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "brand-new-pass",
	})
	require.NoError(t, err)

	after, err := f.users.FindUserById(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.FailedLoginAttempts)
	assert.Nil(t, after.LockoutUntil)
	assert.NotEqual(t, passwordHash(t), after.PasswordHash)
}

// PROFILE

func TestUpdateProfilePatchSemantics(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	bio := "Retired teacher, happy to help with video calls."
	age := 71
	morning := true

	updated, err := f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{
		Bio:              &bio,
		Age:              &age,
		AvailableMorning: &morning,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 71, *updated.Age)
	assert.True(t, updated.AvailableMorning)
	// untouched fields survive
	assert.Equal(t, "Test User", updated.Name)
}

func TestUpdateProfileClearsFields(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	bio := "something"
	age := 70
	_, err := f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{Bio: &bio, Age: &age})
	require.NoError(t, err)

	empty := ""
	zero := 0
	updated, err := f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{Bio: &empty, Age: &zero})
	require.NoError(t, err)

	assert.Nil(t, updated.Bio)
	assert.Nil(t, updated.Age)
}

func TestUpdateProfileRejectsBadValues(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	empty := " "
	_, err := f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	age := 130
	_, err = f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{Age: &age})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProfileCannotSetAvatarURL(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	url := "https://evil.example.com/avatar.jpg"
	_, err := f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{AvatarURL: &url})
	// a non-empty avatar URL through the profile form counts as no-op
	assert.ErrorIs(t, err, ErrInvalidInput)

	set, err := f.svc.UpdateAvatar(u.ID, "https://cdn.example.com/real.jpg")
	require.NoError(t, err)
	require.NotNil(t, set.AvatarURL)

	empty := ""
	cleared, err := f.svc.UpdateProfile(u.ID, dto.UpdateProfileRequest{AvatarURL: &empty})
	require.NoError(t, err)
	assert.Nil(t, cleared.AvatarURL)
}

func TestDeleteAccount(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")

	require.NoError(t, f.svc.DeleteAccount(u.ID))
	assert.ErrorIs(t, f.svc.DeleteAccount(u.ID), ErrUserNotFound)
}

// SKILLS

func TestSkillSelectionRoundTrip(t *testing.T) {
	f := newUserFixture(t)
	u := f.addUser(t, "mabel@example.com")
	f.skills.skills = []domain.Skill{
		{ID: 1, Name: "Video Calls"},
		{ID: 2, Name: "Email & Messaging"},
	}

	ids, err := f.svc.GetUserSkills(u.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, f.svc.SetUserSkills(u.ID, []uint{1, 2}))

	ids, err = f.svc.GetUserSkills(u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids)
}

func TestListSkillsSorted(t *testing.T) {
	f := newUserFixture(t)
	f.skills.skills = []domain.Skill{
		{ID: 1, Name: "Video Calls"},
		{ID: 2, Name: "Email & Messaging"},
	}

	skills, err := f.svc.ListSkills()
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "Email & Messaging", skills[0].Name)
}
