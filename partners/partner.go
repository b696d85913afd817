package partners

import (
	"context"
	"strings"

	"vyaparkendra/models"
)

// Connector delivers a loan application to an NBFC partner's system.
type Connector interface {
	Submit(ctx context.Context, partner models.NBFCPartner, loan models.Loan) error
}

var connectors = map[string]Connector{}

func Register(code string, c Connector) {
	connectors[strings.ToLower(code)] = c
}

// Get returns the connector registered under code, falling back to the
// plain webhook connector for unknown or empty codes.
func Get(code string) Connector {
	if c, ok := connectors[strings.ToLower(code)]; ok {
		return c
	}
	return connectors["webhook"]
}
