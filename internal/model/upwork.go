package model

type UpworkStatus struct {
	Connected bool `json:"connected"`
}

type UpworkConnect struct {
	AuthURL string `json:"authUrl"`
}

type UpworkProfile struct {
	Skills     []string `json:"skills,omitempty"`
	HourlyRate float64  `json:"hourly_rate,omitempty"`
	Bio        string   `json:"bio,omitempty"`
}
