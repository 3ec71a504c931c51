package ipc

import (
	"errors"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"stylus/internal/catalog"
	"stylus/internal/library"
)

// Client provides RPC access to the daemon. Domain failures reported in
// the response envelope are surfaced as errors.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(method string, req, resp any, result *Result) error {
	if err := c.client.Call(method, req, resp); err != nil {
		return err
	}
	if !result.Success {
		if result.Error == "" {
			return errors.New("request failed")
		}
		return errors.New(result.Error)
	}
	return nil
}

// GetByID fetches a single record, nil when unknown.
func (c *Client) GetByID(id string) (*catalog.Record, error) {
	var resp GetByIDResponse
	if err := c.call("Stylus.GetByID", GetByIDRequest{ID: id}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

// GetByIDs fetches several records as an array. Unknown ids are skipped.
func (c *Client) GetByIDs(ids []string) ([]*catalog.Record, error) {
	var resp GetByIDsResponse
	if err := c.call("Stylus.GetByIDs", GetByIDsRequest{IDs: ids}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// GetByIDMap fetches several records keyed by id. Unknown ids are absent.
func (c *Client) GetByIDMap(ids []string) (map[string]*catalog.Record, error) {
	var resp GetByIDsResponse
	req := GetByIDsRequest{IDs: ids, AsObject: true}
	if err := c.call("Stylus.GetByIDs", req, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.RecordsByID, nil
}

// GetAll fetches every stored record.
func (c *Client) GetAll() ([]*catalog.Record, error) {
	var resp GetAllResponse
	if err := c.call("Stylus.GetAll", GetAllRequest{}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// GetByArtist searches records by artist name.
func (c *Client) GetByArtist(artist string) ([]*catalog.Record, error) {
	var resp GetByArtistResponse
	if err := c.call("Stylus.GetByArtist", GetByArtistRequest{Artist: artist}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// GetByArtists searches records for several artist names at once.
func (c *Client) GetByArtists(artists []string) (map[string][]*catalog.Record, error) {
	var resp GetByArtistsResponse
	if err := c.call("Stylus.GetByArtists", GetByArtistsRequest{Artists: artists}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// GetByArtistAndTitle searches and classifies records against a release
// title, with an optional fallback title.
func (c *Client) GetByArtistAndTitle(artist, title, titleFallback string) ([]library.Match, error) {
	var resp GetByArtistAndTitleResponse
	req := GetByArtistAndTitleRequest{Artist: artist, Title: title, TitleFallback: titleFallback}
	if err := c.call("Stylus.GetByArtistAndTitle", req, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// GetByArtistAndTitleMap is the id-keyed form of GetByArtistAndTitle.
func (c *Client) GetByArtistAndTitleMap(artist, title, titleFallback string) (map[string]library.Match, error) {
	var resp GetByArtistAndTitleResponse
	req := GetByArtistAndTitleRequest{Artist: artist, Title: title, TitleFallback: titleFallback, AsObject: true}
	if err := c.call("Stylus.GetByArtistAndTitle", req, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.MatchesByID, nil
}

// Add stores a new record and returns it with its final id.
func (c *Client) Add(record *catalog.Record) (*catalog.Record, error) {
	var resp AddResponse
	if err := c.call("Stylus.Add", AddRequest{Record: record}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

// Update shallow-merges fields into an existing record.
func (c *Client) Update(id string, update *library.RecordUpdate) error {
	var resp UpdateResponse
	return c.call("Stylus.Update", UpdateRequest{ID: id, Update: update}, &resp, &resp.Result)
}

// UpdateRating sets a record's rating.
func (c *Client) UpdateRating(id string, rating int) error {
	var resp UpdateRatingResponse
	return c.call("Stylus.UpdateRating", UpdateRatingRequest{ID: id, Rating: rating}, &resp, &resp.Result)
}

// Delete removes a record by id.
func (c *Client) Delete(id string) error {
	var resp DeleteResponse
	return c.call("Stylus.Delete", DeleteRequest{ID: id}, &resp, &resp.Result)
}

// Count returns the stored record count.
func (c *Client) Count() (int, error) {
	var resp CountResponse
	if err := c.call("Stylus.Count", CountRequest{}, &resp, &resp.Result); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// SetAll replaces the entire catalog.
func (c *Client) SetAll(records []*catalog.Record) (int, error) {
	var resp SetAllResponse
	if err := c.call("Stylus.SetAll", SetAllRequest{Records: records}, &resp, &resp.Result); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call("Stylus.Status", StatusRequest{}, &resp, &resp.Result); err != nil {
		return nil, err
	}
	return &resp, nil
}
