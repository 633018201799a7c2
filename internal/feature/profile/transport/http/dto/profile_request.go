// Package dto defines the profile feature's request and response bodies.
package dto

// ProfileReq is the body of POST /api/profile.
type ProfileReq struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required" msg:"Status is required"`
	GitHubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required" msg:"Skills are required"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ExperienceReq is the body of PUT /api/profile/experience.
// Dates are accepted as YYYY-MM-DD or RFC 3339.
type ExperienceReq struct {
	Title       string `json:"title" binding:"required" msg:"Title is required"`
	Company     string `json:"company" binding:"required" msg:"Company is required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required" msg:"From Date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}
