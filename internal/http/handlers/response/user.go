package response

import (
	"securecrop/internal/core/domain/user"
	"time"
)

type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	Role               string     `json:"role"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	PhoneNumber        *string    `json:"phone_number,omitempty"`
	LocationLat        *float64   `json:"location_lat,omitempty"`
	LocationLon        *float64   `json:"location_lon,omitempty"`
	ReceiveEmailAlerts bool       `json:"receive_email_alerts"`
	ReceiveSMSAlerts   bool       `json:"receive_sms_alerts"`
	ProfilePicture     *string    `json:"profile_picture,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.Username = du.Username
	u.Role = string(du.Role)
	u.IsActive = du.IsActive
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		lastLoginAt := du.LastLoginAt.Value
		u.LastLoginAt = &lastLoginAt
	}
	if du.PhoneNumber.IsPresent {
		phoneNumber := du.PhoneNumber.Value
		u.PhoneNumber = &phoneNumber
	}
	if du.LocationLat.IsPresent {
		lat := du.LocationLat.Value
		u.LocationLat = &lat
	}
	if du.LocationLon.IsPresent {
		lon := du.LocationLon.Value
		u.LocationLon = &lon
	}
	if du.ProfilePicture.IsPresent {
		picture := du.ProfilePicture.Value
		u.ProfilePicture = &picture
	}
}
