package strategy

import (
	"fmt"

	"github.com/arloliu/topoplace/types"
)

// ErrUnknownMergePolicy indicates a merge policy name that ParseMergePolicy
// does not recognize. It wraps types.ErrInvalidInput.
var ErrUnknownMergePolicy = fmt.Errorf("%w: unknown merge policy", types.ErrInvalidInput)
