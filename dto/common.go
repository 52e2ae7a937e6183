package dto

// ActorResponse carries the minimal public view of a user.
type ActorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	Avatar      string `json:"avatar"`
}
