package refresh

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// HashContent returns the hex xxHash of content.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
