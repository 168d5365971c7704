// Package greeter exposes a wallet-independent sample action. It doubles as
// the reference provider for registration, validation, and composition
// behavior.
package greeter

import (
	"context"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/halcyonlabs/actionkit/internal/actions"
	"github.com/halcyonlabs/actionkit/internal/schema"
)

var set = actions.MustNewSet("greeter")

func init() {
	set.MustAdd(actions.Spec{
		Name:        "greet",
		Description: "Builds a greeting for a name, repeated a number of times",
		Schema: schema.MustNew(schema.Object(map[string]*jsonschema.Schema{
			"name":  schema.String("name to greet", 1, 64),
			"times": schema.Int("how many times to repeat the greeting", 1, 10),
		}, []string{"name", "times"})),
	}, actions.Unbound(greet))
}

type greetInput struct {
	Name  string `json:"name"`
	Times int    `json:"times"`
}

func greet(_ context.Context, input greetInput) (string, error) {
	greeting := "Hello, " + input.Name + "!"
	parts := make([]string, input.Times)
	for i := range parts {
		parts[i] = greeting
	}
	return strings.Join(parts, " "), nil
}

// New constructs the greeter provider. It supports every network.
func New() (*actions.Provider, error) {
	return actions.NewProvider("greeter", set)
}
