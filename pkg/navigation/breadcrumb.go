package navigation

// Crumb is one step of a breadcrumb trail. An empty Path means the crumb is
// rendered as plain text.
type Crumb struct {
	Label   string `json:"label"`
	Path    string `json:"path,omitempty"`
	Current bool   `json:"current"`
}

// Linked reports whether the crumb should render as a link.
func (c Crumb) Linked() bool {
	return c.Path != ""
}

// Trail is an ordered breadcrumb trail, home first.
type Trail []Crumb

// BreadcrumbsFor builds the trail for a page. Home is always first and always
// linked. Every supplied item except the last keeps its path; the last item
// is the current page and never carries one. Items without a path stay
// unlinked wherever they appear.
func BreadcrumbsFor(home Item, items []Item) Trail {
	if home.Path == "" {
		home.Path = "/"
	}

	trail := make(Trail, 0, len(items)+1)
	trail = append(trail, Crumb{Label: home.Label, Path: home.Path})

	for i, item := range items {
		crumb := Crumb{Label: item.Label, Path: item.Path}
		if i == len(items)-1 {
			crumb.Path = ""
			crumb.Current = true
		}
		trail = append(trail, crumb)
	}

	return trail
}
