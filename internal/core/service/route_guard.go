package service

import (
	"context"
	"strings"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
	"github.com/rentaride/client-go/internal/metrics"
)

// Default redirect targets, overridable per guard.
const (
	defaultLoginPath        = "/login"
	defaultUnauthorizedPath = "/unauthorized"
	defaultHomePath         = "/"
)

// RouteGuard evaluates a view's access policy for one navigation attempt.
// Evaluation is side-effect free and idempotent: with unchanged session
// state, evaluating twice yields the identical decision, so frameworks may
// re-invoke it on re-render.
type RouteGuard struct {
	session          ports.SessionReader
	loginPath        string
	unauthorizedPath string
	homePath         string
}

// GuardOption customises a RouteGuard's redirect targets.
type GuardOption func(*RouteGuard)

// WithLoginPath overrides the login redirect target.
func WithLoginPath(path string) GuardOption {
	return func(g *RouteGuard) { g.loginPath = path }
}

// WithUnauthorizedPath overrides the unauthorized redirect target.
func WithUnauthorizedPath(path string) GuardOption {
	return func(g *RouteGuard) { g.unauthorizedPath = path }
}

// WithHomePath overrides the default target for public-only redirects.
func WithHomePath(path string) GuardOption {
	return func(g *RouteGuard) { g.homePath = path }
}

// NewRouteGuard builds a guard over the given session reader.
func NewRouteGuard(session ports.SessionReader, opts ...GuardOption) *RouteGuard {
	g := &RouteGuard{
		session:          session,
		loginPath:        defaultLoginPath,
		unauthorizedPath: defaultUnauthorizedPath,
		homePath:         defaultHomePath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate decides whether the view at path may render under policy.
// requested carries the originally asked-for path into login redirects so
// the login flow can return there afterwards.
func (g *RouteGuard) Evaluate(ctx context.Context, requested string, policy domain.RoutePolicy) domain.RouteDecision {
	decision := g.evaluate(ctx, requested, policy)
	metrics.GuardDecisionsTotal.WithLabelValues(string(decision.Kind)).Inc()
	return decision
}

func (g *RouteGuard) evaluate(ctx context.Context, requested string, policy domain.RoutePolicy) domain.RouteDecision {
	if policy.PublicOnly {
		if g.session.IsAuthenticated(ctx) {
			return domain.RouteDecision{Kind: domain.DecisionRedirectAway, RedirectTo: g.redirectAway(policy), From: requested}
		}
		return domain.RouteDecision{Kind: domain.DecisionGranted, From: requested}
	}

	if policy.RequireAuth && !g.session.IsAuthenticated(ctx) {
		return domain.RouteDecision{Kind: domain.DecisionRedirectToLogin, RedirectTo: g.loginPath, From: requested}
	}

	if len(policy.AllowedRoles) > 0 {
		user := g.session.CurrentUser(ctx)
		if user == nil || !roleAllowed(user.Role, policy.AllowedRoles) {
			return domain.RouteDecision{Kind: domain.DecisionRedirectUnauthorized, RedirectTo: g.unauthorizedPath, From: requested}
		}
	}

	if policy.Condition != nil && !policy.Condition() {
		return domain.RouteDecision{Kind: domain.DecisionRedirectAway, RedirectTo: g.redirectAway(policy), From: requested}
	}

	return domain.RouteDecision{Kind: domain.DecisionGranted, From: requested}
}

func (g *RouteGuard) redirectAway(policy domain.RoutePolicy) string {
	if policy.RedirectTo != "" {
		return policy.RedirectTo
	}
	return g.homePath
}

// roleAllowed matches the record's role against the allowed set,
// insensitive to case and to the conventional "ROLE_" prefix.
func roleAllowed(role string, allowed []string) bool {
	have := domain.CanonicalRole(role)
	for _, a := range allowed {
		if strings.EqualFold(have, domain.CanonicalRole(a)) {
			return true
		}
	}
	return false
}
