package venues

type CreateVenueRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=255"`
	City     string   `json:"city" binding:"required,min=1,max=255"`
	Capacity int      `json:"capacity" binding:"min=0"`
	Tags     []string `json:"tags" binding:"omitempty,max=20,dive,min=1,max=50"`
}
