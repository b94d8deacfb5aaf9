// Package authz decides which role may run which back-office action.
// Decisions come from an embedded Rego policy evaluated in process.
package authz

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/ecolemusique/backoffice/internal/models"
)

type Action string

const (
	ActionUsersCreate       Action = "users.create"
	ActionUsersUpdate       Action = "users.update"
	ActionUsersDelete       Action = "users.delete"
	ActionUsersList         Action = "users.list"
	ActionCatalogRead       Action = "catalog.read"
	ActionCatalogWrite      Action = "catalog.write"
	ActionAssociationsRead  Action = "associations.read"
	ActionAssociationsWrite Action = "associations.write"
	ActionSessionRead       Action = "session.read"
)

const query = "data.backoffice.authz.allow"

//go:embed policy.rego
var defaultPolicy string

// Request is the policy input. Self is true when the caller acts on its own user id.
type Request struct {
	Role   models.Role
	Action Action
	Self   bool
}

type Authorizer interface {
	Allow(ctx context.Context, req Request) (bool, error)
}

// OPAAuthorizer holds the compiled policy; it is safe for concurrent use.
type OPAAuthorizer struct {
	prepared rego.PreparedEvalQuery
}

// NewOPAAuthorizer compiles the embedded policy.
func NewOPAAuthorizer(ctx context.Context) (*OPAAuthorizer, error) {
	return NewOPAAuthorizerFromSource(ctx, defaultPolicy)
}

func NewOPAAuthorizerFromSource(ctx context.Context, src string) (*OPAAuthorizer, error) {
	compiler, err := ast.CompileModules(map[string]string{"authz.rego": src})
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	pq, err := rego.New(
		rego.Query(query),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy: %w", err)
	}
	return &OPAAuthorizer{prepared: pq}, nil
}

func (a *OPAAuthorizer) Allow(ctx context.Context, req Request) (bool, error) {
	input := map[string]interface{}{
		"role":   string(req.Role),
		"action": string(req.Action),
		"self":   req.Self,
	}
	rs, err := a.prepared.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("eval policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, nil
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy returned %T, want bool", rs[0].Expressions[0].Value)
	}
	return allowed, nil
}
