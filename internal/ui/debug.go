package ui

import (
	"fmt"

	"github.com/oakwood-commons/roadtrip/internal/search"
)

// debugLine summarises the search state for --debug sessions.
func debugLine(th Theme, ctrl *search.Controller) string {
	sel := ctrl.Selection()
	idx := "-"
	if i, ok := sel.Index(); ok {
		idx = fmt.Sprint(i)
	}
	return th.Debug.Render(fmt.Sprintf(
		"state=%s index=%s results=%d token=%d searching=%t",
		sel.State(), idx, sel.Len(), ctrl.CurrentToken(), ctrl.Searching(),
	))
}
