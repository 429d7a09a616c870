package models

// Place is where an event happens. Which variant applies is decided by the
// event type: video calls carry a link, regional trips a region name and
// every other type a physical location.
type Place interface {
	// Text is the place as printed in lists and reports
	Text() string
	place()
}

// Venue is a physical location
type Venue struct {
	Location string
}

// VideoCall is a remote meeting reachable through a link
type VideoCall struct {
	Link string
}

// RegionTrip is a visit to a region
type RegionTrip struct {
	Region string
}

func (Venue) place()      {}
func (VideoCall) place()  {}
func (RegionTrip) place() {}

func (v Venue) Text() string {
	return v.Location
}

func (v VideoCall) Text() string {
	if v.Link == "" {
		return TypeVCS.Label()
	}
	return v.Link
}

func (r RegionTrip) Text() string {
	if r.Region == "" {
		return "Регион не указан"
	}
	return r.Region
}

// Place returns the place variant selected by the event type
func (e *Event) Place() Place {
	switch e.Type {
	case TypeVCS:
		return VideoCall{Link: e.VCSLink}
	case TypeRegionalTrip:
		return RegionTrip{Region: e.RegionName}
	default:
		return Venue{Location: e.Location}
	}
}
