package cloudflare

// AccessApplication is a Zero Trust resource representing one protected
// hostname/path. Cloudflare matches applications by their domain string,
// not by an opaque key.
type AccessApplication struct {
	ID                      string `json:"id,omitempty"`
	AUD                     string `json:"aud,omitempty"`
	Name                    string `json:"name"`
	Domain                  string `json:"domain"`
	Type                    string `json:"type,omitempty"`
	SessionDuration         string `json:"session_duration,omitempty"`
	AutoRedirectToIdentity  bool   `json:"auto_redirect_to_identity,omitempty"`
	HTTPOnlyCookieAttribute bool   `json:"http_only_cookie_attribute,omitempty"`
	SameSiteCookieAttribute string `json:"same_site_cookie_attribute,omitempty"`
}

// CreateAccessAppParams is the request body for creating an Access
// application.
type CreateAccessAppParams struct {
	Name                    string `json:"name"`
	Domain                  string `json:"domain"`
	Type                    string `json:"type"`
	SessionDuration         string `json:"session_duration"`
	AutoRedirectToIdentity  bool   `json:"auto_redirect_to_identity"`
	HTTPOnlyCookieAttribute bool   `json:"http_only_cookie_attribute"`
	SameSiteCookieAttribute string `json:"same_site_cookie_attribute"`
}

// AccessPolicy is a rule attached to an Access application specifying who
// may pass.
type AccessPolicy struct {
	ID         string        `json:"id,omitempty"`
	Name       string        `json:"name"`
	Decision   string        `json:"decision"`
	Include    []IncludeRule `json:"include"`
	Precedence int           `json:"precedence,omitempty"`
}

// CreateAccessPolicyParams is the request body for creating an Access
// policy. Require and Exclude are always sent, empty, so the API receives
// explicit lists rather than nulls.
type CreateAccessPolicyParams struct {
	Name       string        `json:"name"`
	Decision   string        `json:"decision"`
	Include    []IncludeRule `json:"include"`
	Require    []IncludeRule `json:"require"`
	Exclude    []IncludeRule `json:"exclude"`
	Precedence int           `json:"precedence"`
}

// IncludeRule is one entry of a policy's include/require/exclude lists.
// Exactly one member is set; it marshals to {"email":{"email":...}} or
// {"everyone":{}}.
type IncludeRule struct {
	Email    *EmailRule    `json:"email,omitempty"`
	Everyone *EveryoneRule `json:"everyone,omitempty"`
}

// EmailRule matches a single email address.
type EmailRule struct {
	Email string `json:"email"`
}

// EveryoneRule matches any visitor.
type EveryoneRule struct{}

// EmailInclude builds an include rule matching one address.
func EmailInclude(address string) IncludeRule {
	return IncludeRule{Email: &EmailRule{Email: address}}
}

// EveryoneInclude builds the wildcard include rule.
func EveryoneInclude() IncludeRule {
	return IncludeRule{Everyone: &EveryoneRule{}}
}

// IdentityProvider is an account-level authentication method. This tool
// only creates the One-Time PIN provider.
type IdentityProvider struct {
	ID     string         `json:"id,omitempty"`
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}
