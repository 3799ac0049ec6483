package domain

type NavItem struct {
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Items []NavItem `json:"items,omitempty"`
}

var navigation = map[Role][]NavItem{
	RoleAdmin: {
		{
			Title: "Admin",
			URL:   "/admin/dashboard",
			Items: []NavItem{
				{Title: "Admin Dashboard", URL: "/admin/dashboard"},
				{Title: "Manage Course", URL: "/admin/manage_course"},
				{Title: "Manage Assignment & Quiz", URL: "/admin/manage_assignment_quiz"},
			},
		},
		{Title: "Back Home", URL: "/"},
	},
	RoleStudent: {
		{
			Title: "Student",
			URL:   "/student/dashboard",
			Items: []NavItem{
				{Title: "Student Dashboard", URL: "/student/dashboard"},
				{Title: "Enrolled Course", URL: "/student/enrolled_course"},
			},
		},
		{Title: "Back Home", URL: "/"},
	},
}

// NavigationFor returns the sidebar for role, or nil for an unknown role.
func NavigationFor(role Role) []NavItem {
	return navigation[role]
}

// DashboardPath is where a role lands after login.
func DashboardPath(role Role) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	}
	return "/"
}
