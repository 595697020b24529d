package session

import (
	"context"
	"errors"
	"time"

	"liquidator/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/golang-jwt/jwt"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidIssuer token not issued for this dapp
var ErrInvalidIssuer = errors.New("invalid issuer")

// New new session
func New(userz core.IUserService, capacity int, issuers []string) core.Session {
	var s core.Session = &session{
		userz:   userz,
		issuers: issuers,
		sf:      &singleflight.Group{},
	}

	if capacity > 0 {
		s = &cacheSession{
			Session: s,
			tokens:  gcache.New(capacity).LRU().Build(),
		}
	}

	return s
}

type claims struct {
	jwt.StandardClaims
	Scope string `json:"scp,omitempty"`
}

type session struct {
	userz   core.IUserService
	sf      *singleflight.Group
	issuers []string
}

func (s *session) Login(ctx context.Context, accessToken string) (*core.User, error) {
	user, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		// the signature is checked by mixin when the profile is read
		claim := parseClaims(accessToken)

		if claim.Scope != "FULL" && !govalidator.IsIn(claim.Issuer, s.issuers...) {
			return nil, ErrInvalidIssuer
		}

		if jti := claim.Id; govalidator.IsUUID(jti) {
			ctx = mixin.WithRequestID(ctx, jti)
		}

		return s.userz.Login(ctx, accessToken)
	})

	if err != nil {
		return nil, err
	}

	return user.(*core.User), nil
}

type cacheSession struct {
	core.Session
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (*core.User, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		return v.(*core.User), nil
	}

	user, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	_ = s.tokens.SetWithExpire(accessToken, user, expireOf(accessToken))
	return user, nil
}

// expireOf time left before the token expires, at most an hour
func expireOf(accessToken string) time.Duration {
	claim := parseClaims(accessToken)

	exp := time.Hour
	if claim.ExpiresAt > 0 {
		if left := time.Until(time.Unix(claim.ExpiresAt, 0)); left < exp {
			exp = left
		}
	}

	return exp
}

func parseClaims(accessToken string) claims {
	var claim claims
	_, _, _ = new(jwt.Parser).ParseUnverified(accessToken, &claim)
	return claim
}
