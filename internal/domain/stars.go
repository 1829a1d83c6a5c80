// Package domain contains the core data structures and domain logic for the application.
package domain

// UserProfile is the subset of a GitHub user profile needed to plan pagination.
type UserProfile struct {
	Login       string `json:"login"`
	ID          int64  `json:"id"`
	PublicRepos int    `json:"public_repos"`
}

// Repository is a single public repository owned by the user.
type Repository struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Stars       int     `json:"stargazers_count"`
}

// DescriptionOr returns the repository description, or placeholder when it is absent or empty.
func (r Repository) DescriptionOr(placeholder string) string {
	if r.Description == nil || *r.Description == "" {
		return placeholder
	}
	return *r.Description
}

// StarSummary is the result of aggregating every page of a user's repositories.
// It is the core domain entity of this application.
type StarSummary struct {
	// Repositories holds the repositories at or above the threshold, most starred first.
	Repositories []Repository `json:"repositories"`
	// TotalStars counts every fetched repository, including the ones filtered out.
	TotalStars int `json:"total_stars"`
}
