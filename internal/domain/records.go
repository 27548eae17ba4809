package domain

// Angler is a registered user.
type Angler struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CatchCount   int    `json:"catch_count"`
	Admin        bool   `json:"is_admin"`
}

// Species is a fish species with its master-angler qualifying length in inches.
type Species struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	MasterAnglerLength float64 `json:"master_angler_length"`
}

// Lake is a body of water. Coordinates are resolved once when the lake is
// added and are never refreshed.
type Lake struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	ClosestTown string  `json:"closest_town"`
	Lat         float64 `json:"latitude"`
	Lon         float64 `json:"longitude"`
}

// Coordinates returns the lake position.
func (l Lake) Coordinates() Coordinates {
	return Coordinates{Lat: l.Lat, Lon: l.Lon}
}

// Lure is an item in an angler's tackle box.
type Lure struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	AnglerID int64  `json:"angler_id"`
}

// Principal is the authenticated angler making a request.
type Principal struct {
	AnglerID int64
	Username string
	Admin    bool
}

// CanAccess reports whether p may act on records owned by anglerID.
func (p Principal) CanAccess(anglerID int64) bool {
	return p.Admin || p.AnglerID == anglerID
}
