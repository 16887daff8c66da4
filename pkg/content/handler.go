package content

import (
	"context"
	"iter"
	"net/http"
	"slices"

	"github.com/iamsank8/portfolio/pkg/serializer"
)

// Handler returns the GET endpoint serving category c as a JSON array.
// An empty result is encoded as [] rather than null.
func Handler(a *Adapter, c Category) http.Handler {
	switch c {
	case CategoryProjects:
		return listHandler(a.Projects)
	case CategorySkills:
		return listHandler(a.Skills)
	case CategoryExperience:
		return listHandler(a.Experience)
	case CategoryEducation:
		return listHandler(a.Education)
	case CategoryAbout:
		return listHandler(a.About)
	default:
		return http.NotFoundHandler()
	}
}

func listHandler[T any](load func(context.Context) iter.Seq[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			serializer.RespondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
			return
		}

		items := slices.Collect(load(r.Context()))
		if items == nil {
			items = []T{}
		}
		serializer.RespondJSON(w, http.StatusOK, items)
	}
}
