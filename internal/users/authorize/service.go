// Copyright (c) 2026 F-Students App. All rights reserved.

package authorize

import (
	"context"
	"fmt"
	"time"

	"github.com/f-students-app/auth-service/internal/platform/sec"
)

// TokenIssuer defines the contract for minting the authorized access token.
type TokenIssuer interface {
	IssueAccessToken(userID, username string, roles []string, isAuthorized bool) (string, error)
	AccessTokenTTL() time.Duration
}

// Service implements the authorization exchange use case.
type Service struct {
	grantRepository GrantRepository
	tokenIssuer     TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(grantRepo GrantRepository, tokenIssuer TokenIssuer) *Service {
	return &Service{
		grantRepository: grantRepo,
		tokenIssuer:     tokenIssuer,
	}
}

// AuthorizedSession is the result of a successful exchange: the only
// isAuthorized=true token the system ever mints, plus the effective
// permission map keyed by module code.
type AuthorizedSession struct {
	AccessToken string
	ExpiresIn   int
	Permissions map[string]ModulePermissions
}

/*
AuthorizeSession exchanges the caller's pre-authorization session for the
fully authorized one.

Description: Resolves every module-access grant for the identity's role
codes and aggregates them per module code by OR-ing each of the seven flags
independently. Duplicate (role, module) rows union rather than overwrite, so
the result is independent of row order and the most permissive value wins
per flag. Modules without any grant are absent from the map.

Parameters:
  - context: context.Context
  - identity: sec.Identity (attached by the session authenticator)

Returns:
  - *AuthorizedSession: Authorized token and permission map
  - err: Storage or signing failures
*/
func (service *Service) AuthorizeSession(context context.Context, identity sec.Identity) (*AuthorizedSession, error) {
	grants, err := service.grantRepository.ListForRoles(context, identity.Roles)
	if err != nil {
		return nil, fmt.Errorf("authorize_service_list_grants_failed: %w", err)
	}

	permissions := make(map[string]ModulePermissions, len(grants))
	for _, grant := range grants {
		permissions[grant.ModuleCode] = permissions[grant.ModuleCode].Merge(grant.Permissions)
	}

	accessToken, err := service.tokenIssuer.IssueAccessToken(identity.ID, identity.Username, identity.Roles, true)
	if err != nil {
		return nil, fmt.Errorf("authorize_service_token_failed: %w", err)
	}

	return &AuthorizedSession{
		AccessToken: accessToken,
		ExpiresIn:   int(service.tokenIssuer.AccessTokenTTL().Seconds()),
		Permissions: permissions,
	}, nil
}
