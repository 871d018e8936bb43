// Copyright (c) 2026 F-Students App. All rights reserved.

package authorize_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-students-app/auth-service/internal/platform/sec"
	"github.com/f-students-app/auth-service/internal/users/authorize"
)

type fakeGrantRepository struct {
	grants    []authorize.Grant
	roleCodes []string
}

func (r *fakeGrantRepository) ListForRoles(_ context.Context, roleCodes []string) ([]authorize.Grant, error) {
	r.roleCodes = roleCodes
	return r.grants, nil
}

type fakeTokenIssuer struct {
	lastAuthorized bool
}

func (p *fakeTokenIssuer) IssueAccessToken(userID, _ string, _ []string, isAuthorized bool) (string, error) {
	p.lastAuthorized = isAuthorized
	return "token-" + userID, nil
}

func (p *fakeTokenIssuer) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

func testIdentity() sec.Identity {
	return sec.Identity{ID: "user-1", Username: "alice", Roles: []string{"TEACHER", "STAFF"}}
}

/*
TestAuthorizeSession_MintsAuthorizedToken verifies the exchange produces the
isAuthorized token with the caller's role codes.
*/
func TestAuthorizeSession_MintsAuthorizedToken(t *testing.T) {
	grantRepo := &fakeGrantRepository{}
	issuer := &fakeTokenIssuer{}
	service := authorize.NewService(grantRepo, issuer)

	session, err := service.AuthorizeSession(context.Background(), testIdentity())
	require.NoError(t, err)

	assert.True(t, issuer.lastAuthorized)
	assert.Equal(t, "token-user-1", session.AccessToken)
	assert.Equal(t, 900, session.ExpiresIn)
	assert.Equal(t, []string{"TEACHER", "STAFF"}, grantRepo.roleCodes)
}

/*
TestAuthorizeSession_FlagUnion verifies duplicate grants for the same module
OR each flag independently instead of last-write-wins.
*/
func TestAuthorizeSession_FlagUnion(t *testing.T) {
	grantRepo := &fakeGrantRepository{grants: []authorize.Grant{
		{ModuleCode: "GRADES", Permissions: authorize.ModulePermissions{CanView: true, CanDownload: true}},
		{ModuleCode: "GRADES", Permissions: authorize.ModulePermissions{CanCreate: true, CanDownload: false}},
		{ModuleCode: "GRADES", Permissions: authorize.ModulePermissions{CanApprove: true}},
	}}
	service := authorize.NewService(grantRepo, &fakeTokenIssuer{})

	session, err := service.AuthorizeSession(context.Background(), testIdentity())
	require.NoError(t, err)

	grades, ok := session.Permissions["GRADES"]
	require.True(t, ok)
	assert.Equal(t, authorize.ModulePermissions{
		CanView:     true,
		CanCreate:   true,
		CanDownload: true,
		CanApprove:  true,
	}, grades)
}

/*
TestAuthorizeSession_OrderIndependence verifies the aggregated map is the
same regardless of grant row ordering.
*/
func TestAuthorizeSession_OrderIndependence(t *testing.T) {
	forward := []authorize.Grant{
		{ModuleCode: "GRADES", Permissions: authorize.ModulePermissions{CanView: true}},
		{ModuleCode: "GRADES", Permissions: authorize.ModulePermissions{CanDelete: true}},
		{ModuleCode: "REPORTS", Permissions: authorize.ModulePermissions{CanViewAll: true}},
	}
	backward := []authorize.Grant{forward[2], forward[1], forward[0]}

	resultFor := func(grants []authorize.Grant) map[string]authorize.ModulePermissions {
		service := authorize.NewService(&fakeGrantRepository{grants: grants}, &fakeTokenIssuer{})
		session, err := service.AuthorizeSession(context.Background(), testIdentity())
		require.NoError(t, err)
		return session.Permissions
	}

	assert.Equal(t, resultFor(forward), resultFor(backward))
}

/*
TestAuthorizeSession_NoGrants verifies roles without grants yield an empty
permission map while the authorized token is still minted.
*/
func TestAuthorizeSession_NoGrants(t *testing.T) {
	issuer := &fakeTokenIssuer{}
	service := authorize.NewService(&fakeGrantRepository{}, issuer)

	session, err := service.AuthorizeSession(context.Background(), testIdentity())
	require.NoError(t, err)

	assert.Empty(t, session.Permissions)
	assert.True(t, issuer.lastAuthorized)
}

/*
TestAuthorizeSession_AbsentModules verifies modules the caller has no grant
for do not appear in the map at all.
*/
func TestAuthorizeSession_AbsentModules(t *testing.T) {
	grantRepo := &fakeGrantRepository{grants: []authorize.Grant{
		{ModuleCode: "GRADES", Permissions: authorize.ModulePermissions{CanView: true}},
	}}
	service := authorize.NewService(grantRepo, &fakeTokenIssuer{})

	session, err := service.AuthorizeSession(context.Background(), testIdentity())
	require.NoError(t, err)

	assert.Contains(t, session.Permissions, "GRADES")
	assert.NotContains(t, session.Permissions, "REPORTS")
	assert.Len(t, session.Permissions, 1)
}
