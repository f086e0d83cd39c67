package chat

import (
	"fmt"

	"github.com/kailas-cloud/shopsense/internal/intent"
)

// Reply templates.
const (
	msgGeneric   = "Here are some items you might like:"
	msgNoResults = "I couldn't find any products matching your request. Could you try different keywords?"
	msgBoth      = "I found these %s %s options for you:"
	msgColor     = "Here are some %s items you might like:"
	msgCategory  = "Here are some %s options for you:"
)

// compose picks the template by what was detected. Only when nothing was
// detected does the result count matter.
func compose(in intent.Intent, results int) string {
	switch {
	case in.HasColors() && in.HasCategories():
		return fmt.Sprintf(msgBoth, in.Colors[0].Text, in.Categories[0].Text)
	case in.HasColors():
		return fmt.Sprintf(msgColor, in.Colors[0].Text)
	case in.HasCategories():
		return fmt.Sprintf(msgCategory, in.Categories[0].Text)
	case results == 0:
		return msgNoResults
	default:
		return msgGeneric
	}
}
