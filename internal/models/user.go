package models

// CurrentUserID stands in for the logged-in user. There is no authentication,
// so every write that needs an actor uses it.
const CurrentUserID = "current-user-id"

type User struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Bio            string  `json:"bio"`
	Avatar         *string `json:"avatar"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
}

func (u User) Clone() User {
	if u.Avatar != nil {
		avatar := *u.Avatar
		u.Avatar = &avatar
	}
	return u
}

// UserPatch holds the profile fields an update may replace. Nil fields are
// left untouched.
type UserPatch struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Avatar != nil {
		u.Avatar = nullable(*p.Avatar)
	}
}

// nullable maps "" to nil so a patch can clear an optional URL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
