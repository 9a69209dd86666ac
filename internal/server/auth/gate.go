package auth

// Action is what the caller must do with a request.
type Action int

const (
	// Allow lets the request proceed.
	Allow Action = iota
	// Redirect sends the caller to Decision.Target instead.
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the gate's verdict for one request. UserID is set whenever
// the request carried a valid, unexpired token, regardless of Action.
type Decision struct {
	Action Action
	Target string
	UserID string
}

// Gatekeeper combines the route table and the token issuer into the
// per-request allow/redirect decision. It is stateless across requests and
// safe for unrestricted concurrent use.
type Gatekeeper struct {
	table      *Table
	issuer     *Issuer
	signInPath string
	homePath   string
}

func NewGatekeeper(table *Table, issuer *Issuer, signInPath, homePath string) *Gatekeeper {
	if signInPath == "" {
		signInPath = "/auth/signin"
	}
	if homePath == "" {
		homePath = "/dashboard"
	}
	return &Gatekeeper{table: table, issuer: issuer, signInPath: signInPath, homePath: homePath}
}

// Decide classifies path, derives the caller state from token, and applies
// the decision table:
//
//	                Unauthenticated            Authenticated
//	Public          allow                      allow
//	AuthOnly        allow                      redirect -> home
//	Protected       redirect -> sign-in        allow
//
// An empty or invalid token (malformed, bad signature, expired) means
// unauthenticated. A token subject is trusted for the token's lifetime;
// the store is not consulted here, so deleting a user takes effect once
// their outstanding tokens expire.
func (g *Gatekeeper) Decide(path, token string) Decision {
	var userID string
	if token != "" {
		if claims, err := g.issuer.Parse(token); err == nil {
			userID = claims.Subject
		}
	}
	authenticated := userID != ""

	switch g.table.Classify(path) {
	case Public:
		return Decision{Action: Allow, UserID: userID}
	case AuthOnly:
		if authenticated {
			return Decision{Action: Redirect, Target: g.homePath, UserID: userID}
		}
		return Decision{Action: Allow}
	default:
		if authenticated {
			return Decision{Action: Allow, UserID: userID}
		}
		return Decision{Action: Redirect, Target: g.signInPath}
	}
}
