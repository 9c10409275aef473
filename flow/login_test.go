package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crumhorn/authflow/authapi"
)

func TestLoginSubmit_RefetchesIdentityOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	gomock.InOrder(
		backend.EXPECT().Login(gomock.Any(), "ana@example.com", "password1").Return("Logged in", nil),
		backend.EXPECT().GetUser(gomock.Any()).Return(&authapi.User{Name: "Ana", SessionID: "s1"}, nil),
	)

	notifier := &recordNotifier{}
	identity := NewIdentityCache(backend, notifier, discardLogger())
	form := NewLoginForm(backend, identity, notifier, discardLogger())

	err := form.Submit(context.Background(), "ana@example.com", "password1")
	require.NoError(t, err)

	// The identity comes from the refetch, never the login response.
	st := identity.Snapshot()
	require.NotNil(t, st.Identity)
	assert.Equal(t, "s1", st.Identity.SessionID)
	assert.Contains(t, notifier.Successes(), "Logged in")
}

func TestLoginSubmit_NormalizesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	gomock.InOrder(
		backend.EXPECT().Login(gomock.Any(), "ana@example.com", "password1").Return("ok", nil),
		backend.EXPECT().GetUser(gomock.Any()).Return(&authapi.User{}, nil),
	)

	identity := NewIdentityCache(backend, nil, discardLogger())
	form := NewLoginForm(backend, identity, nil, discardLogger())

	err := form.Submit(context.Background(), "  ana@example.com ", "password1")
	require.NoError(t, err)
}

func TestLoginSubmit_ValidationFailureSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)

	identity := NewIdentityCache(backend, nil, discardLogger())
	form := NewLoginForm(backend, identity, nil, discardLogger())

	err := form.Submit(context.Background(), "not-an-email", "password1")
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid email address", form.FieldErrors()["email"])
}

func TestLoginSubmit_ServerFailureSurfacesMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", &authapi.APIError{Status: 401, Message: "Invalid credentials", Path: "login"})

	identity := NewIdentityCache(backend, nil, discardLogger())
	form := NewLoginForm(backend, identity, nil, discardLogger())

	err := form.Submit(context.Background(), "ana@example.com", "password1")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", form.Err())
}

func TestLoginSubmit_FallsBackToGenericMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", &authapi.APIError{Status: 500, Path: "login"})

	identity := NewIdentityCache(backend, nil, discardLogger())
	form := NewLoginForm(backend, identity, nil, discardLogger())

	err := form.Submit(context.Background(), "ana@example.com", "password1")
	require.Error(t, err)
	assert.Equal(t, "Something went wrong", form.Err())
}

func TestLoginSubmit_ClearErrorResets(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", &authapi.APIError{Status: 401, Message: "Invalid credentials", Path: "login"})

	identity := NewIdentityCache(backend, nil, discardLogger())
	form := NewLoginForm(backend, identity, nil, discardLogger())

	_ = form.Submit(context.Background(), "ana@example.com", "password1")
	require.NotEmpty(t, form.Err())

	form.ClearError()
	assert.Empty(t, form.Err())
	assert.Nil(t, form.FieldErrors())
}
