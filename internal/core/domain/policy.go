package domain

// DecisionKind enumerates the possible outcomes of a route-guard
// evaluation.
type DecisionKind string

const (
	// DecisionGranted renders the requested view.
	DecisionGranted DecisionKind = "granted"
	// DecisionRedirectToLogin sends an unauthenticated visitor to the login
	// view, preserving the originally requested path.
	DecisionRedirectToLogin DecisionKind = "redirect_to_login"
	// DecisionRedirectUnauthorized sends an authenticated visitor without a
	// required role to the unauthorized view.
	DecisionRedirectUnauthorized DecisionKind = "redirect_unauthorized"
	// DecisionRedirectAway sends an already-authenticated visitor off a
	// public-only view (login/register), or enforces a failed conditional
	// policy.
	DecisionRedirectAway DecisionKind = "redirect_away"
)

// RouteDecision is the result of evaluating a policy for one navigation
// attempt. From carries the originally requested path so the login flow can
// return the visitor there afterwards.
type RouteDecision struct {
	Kind       DecisionKind
	RedirectTo string
	From       string
}

// Granted reports whether the requested view may render.
func (d RouteDecision) Granted() bool {
	return d.Kind == DecisionGranted
}

// RoutePolicy is the static access declaration for one protected view.
// Zero value means a public view: no auth required, no role restriction.
type RoutePolicy struct {
	// RequireAuth demands a live session before rendering.
	RequireAuth bool
	// AllowedRoles, when non-empty, restricts the view to principals whose
	// role matches one entry (case-insensitive, "ROLE_" prefix tolerated).
	AllowedRoles []string
	// PublicOnly inverts RequireAuth: authenticated visitors are redirected
	// away (login and registration views).
	PublicOnly bool
	// Condition, when set, is an arbitrary predicate evaluated at decision
	// time for one-off access rules outside the role model.
	Condition func() bool
	// RedirectTo overrides the guard's default target for PublicOnly and
	// Condition redirects.
	RedirectTo string
}

// AdminPolicy protects admin-only views.
func AdminPolicy() RoutePolicy {
	return RoutePolicy{RequireAuth: true, AllowedRoles: []string{RoleAdmin}}
}

// UserPolicy protects signed-in views reachable by both roles.
func UserPolicy() RoutePolicy {
	return RoutePolicy{RequireAuth: true, AllowedRoles: []string{RoleUser, RoleAdmin}}
}

// PublicOnlyPolicy marks views that only make sense signed out.
func PublicOnlyPolicy() RoutePolicy {
	return RoutePolicy{PublicOnly: true}
}

// ConditionalPolicy gates a view on an arbitrary predicate.
func ConditionalPolicy(condition func() bool, redirectTo string) RoutePolicy {
	return RoutePolicy{Condition: condition, RedirectTo: redirectTo}
}
