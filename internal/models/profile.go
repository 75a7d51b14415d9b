package models

type Rank struct {
	MinLevel int    `json:"minLevel"`
	Name     string `json:"name"`
	Color    string `json:"color"`
}

type Profile struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	PlayerAccepted bool   `json:"playerAccepted"`
}
