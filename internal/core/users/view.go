package users

import "time"

// View is the public representation of a user
type View struct {
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	LastName    string    `json:"lastName"`
	DateOfBirth string    `json:"dateOfBirth"`
	Info        string    `json:"info"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	ID          int64     `json:"id"`
	Age         int       `json:"age"`
}

// ToView converts a user to its public representation, computing age at now
func ToView(u *User, now time.Time) View {
	return View{
		ID:          u.ID,
		Name:        u.Name,
		LastName:    u.LastName,
		DateOfBirth: u.DateOfBirth.Format(DateLayout),
		Age:         Age(u.DateOfBirth, now),
		Info:        u.Info,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// ToViews converts a slice of users
func ToViews(list []*User, now time.Time) []View {
	views := make([]View, 0, len(list))
	for _, u := range list {
		views = append(views, ToView(u, now))
	}
	return views
}

// Age returns the number of full years between dob and now
func Age(dob, now time.Time) int {
	if dob.IsZero() || now.Before(dob) {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
