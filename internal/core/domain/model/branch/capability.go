package branch

import (
	"fmt"

	"courierops/internal/pkg/errs"
)

// Capability is a permission a member holds on a branch.
type Capability string

const (
	CapabilityManage Capability = "branch_manage"
	CapabilityRead   Capability = "branch_read"
)

func ParseCapability(s string) (Capability, error) {
	c := Capability(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityManage, CapabilityRead:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("capability is invalid", fmt.Errorf("%q is not a known capability", string(c)))
	}
}

// Satisfies reports whether holding c is enough for an operation requiring
// required. Managers can always read.
func (c Capability) Satisfies(required Capability) bool {
	if c == required {
		return true
	}
	return c == CapabilityManage && required == CapabilityRead
}

func (c Capability) String() string {
	return string(c)
}
