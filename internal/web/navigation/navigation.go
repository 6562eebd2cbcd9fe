// Package navigation provides utilities for managing navigation state and breadcrumbs.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActivePage  string
	Breadcrumbs []BreadcrumbItem
	PageTitle   string
	LoggedIn    bool
	IsAdmin     bool
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Breadcrumbs: make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// WithUser records the session state for the navbar login/logout links.
func (c *Context) WithUser(loggedIn, isAdmin bool) *Context {
	c.LoggedIn = loggedIn
	c.IsAdmin = isAdmin

	return c
}

// IsActive checks if the given page matches the current context.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
