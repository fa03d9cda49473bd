package events

type CreateEventRequest struct {
	VenueID   string `json:"venue_id" binding:"required,uuid"`
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Artist    string `json:"artist" binding:"max=255"`
	Genre     string `json:"genre" binding:"max=100"`
	EventDate string `json:"event_date" binding:"required,datetime=2006-01-02"`
	TicketURL string `json:"ticket_url" binding:"omitempty,url,max=500"`
}
