package ipc

import (
	"time"

	"stylus/internal/catalog"
	"stylus/internal/library"
)

// Result is the common response envelope. Domain failures travel here so
// callers can distinguish them from transport errors.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (r *Result) ok() {
	r.Success = true
	r.Error = ""
}

func (r *Result) fail(err error) {
	r.Success = false
	if err != nil {
		r.Error = err.Error()
	}
}

// GetByIDRequest fetches a single record by id.
type GetByIDRequest struct {
	ID string `json:"id"`
}

// GetByIDResponse returns the record, or nil when the id is unknown.
type GetByIDResponse struct {
	Result
	Record *catalog.Record `json:"record"`
}

// GetByIDsRequest fetches several records by id. AsObject selects the
// id-keyed map result shape over the array shape.
type GetByIDsRequest struct {
	IDs      []string `json:"ids"`
	AsObject bool     `json:"as_object,omitempty"`
}

// GetByIDsResponse returns the found records, as an array or keyed by id
// depending on the request's AsObject. Unknown ids are skipped either way.
type GetByIDsResponse struct {
	Result
	Records     []*catalog.Record          `json:"records,omitempty"`
	RecordsByID map[string]*catalog.Record `json:"records_by_id,omitempty"`
}

// GetAllRequest fetches every stored record.
type GetAllRequest struct{}

// GetAllResponse contains every stored record.
type GetAllResponse struct {
	Result
	Records []*catalog.Record `json:"records"`
}

// GetByArtistRequest searches records by artist name.
type GetByArtistRequest struct {
	Artist string `json:"artist"`
}

// GetByArtistResponse contains the records whose artist matched.
type GetByArtistResponse struct {
	Result
	Records []*catalog.Record `json:"records"`
}

// GetByArtistsRequest searches records for several artist names at once.
type GetByArtistsRequest struct {
	Artists []string `json:"artists"`
}

// GetByArtistsResponse contains the per-artist results keyed by the
// requested name.
type GetByArtistsResponse struct {
	Result
	Records map[string][]*catalog.Record `json:"records"`
}

// GetByArtistAndTitleRequest searches records by artist and classifies
// them against a release title. TitleFallback is tried when the primary
// title yields nothing. AsObject selects the id-keyed map result shape.
type GetByArtistAndTitleRequest struct {
	Artist        string `json:"artist"`
	Title         string `json:"title"`
	TitleFallback string `json:"title_fallback,omitempty"`
	AsObject      bool   `json:"as_object,omitempty"`
}

// GetByArtistAndTitleResponse contains classified matches: an array
// ordered full before partial, or keyed by record id when the request
// asked for the map shape.
type GetByArtistAndTitleResponse struct {
	Result
	Matches     []library.Match          `json:"matches,omitempty"`
	MatchesByID map[string]library.Match `json:"matches_by_id,omitempty"`
}

// AddRequest stores a new record.
type AddRequest struct {
	Record *catalog.Record `json:"record"`
}

// AddResponse returns the stored record with its final id.
type AddResponse struct {
	Result
	Record *catalog.Record `json:"record"`
}

// UpdateRequest shallow-merges fields into an existing record.
type UpdateRequest struct {
	ID     string                `json:"id"`
	Update *library.RecordUpdate `json:"update"`
}

// UpdateResponse reports update outcome.
type UpdateResponse struct {
	Result
}

// UpdateRatingRequest sets a record's rating.
type UpdateRatingRequest struct {
	ID     string `json:"id"`
	Rating int    `json:"rating"`
}

// UpdateRatingResponse reports rating update outcome.
type UpdateRatingResponse struct {
	Result
}

// DeleteRequest removes a record by id.
type DeleteRequest struct {
	ID string `json:"id"`
}

// DeleteResponse reports delete outcome.
type DeleteResponse struct {
	Result
}

// CountRequest fetches the stored record count.
type CountRequest struct{}

// CountResponse contains the stored record count.
type CountResponse struct {
	Result
	Count int `json:"count"`
}

// SetAllRequest replaces the entire catalog.
type SetAllRequest struct {
	Records []*catalog.Record `json:"records"`
}

// SetAllResponse reports how many records the catalog now holds.
type SetAllResponse struct {
	Result
	Count int `json:"count"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Result
	Running      bool      `json:"running"`
	PID          int       `json:"pid"`
	StartedAt    time.Time `json:"started_at"`
	UptimeSecs   int64     `json:"uptime_secs"`
	LockPath     string    `json:"lock_path"`
	DatabasePath string    `json:"database_path"`
	SocketPath   string    `json:"socket_path"`
	Records      int       `json:"records"`
	Indexed      int       `json:"indexed"`
}
