// Package client is a sampling-oracle client for a remote solver API. The
// energy model travels as its canonical serialization inside a gzipped cbor
// request; the response carries bit-packed assignment rows, one bit per model
// variable in model order.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/logger"
	"github.com/Leosirius2597/dwave-factor/qubo"
	"github.com/Leosirius2597/dwave-factor/sampler"
	"github.com/fxamacker/cbor/v2"
	"github.com/icza/bitio"
	"github.com/klauspost/compress/gzip"
)

// SamplePath is the solver API endpoint.
const SamplePath = "/v1/sample"

type wireRequest struct {
	Model       []byte `cbor:"model"`
	NumReads    int    `cbor:"num_reads"`
	Label       string `cbor:"label"`
	Fingerprint []byte `cbor:"fingerprint"`
}

type wireResponse struct {
	NumVariables     int      `cbor:"num_variables"`
	Packed           []byte   `cbor:"packed"`
	Occurrences      []uint64 `cbor:"occurrences"`
	OracleTimeMicros uint64   `cbor:"oracle_time_micros"`
	Error            string   `cbor:"error,omitempty"`
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// Client talks to a remote sampling oracle over HTTP.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the solver at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sample submits the model and decodes the returned sample set. The call is
// all-or-nothing: any transport or decode failure returns with no partial
// result.
func (c *Client) Sample(ctx context.Context, m *qubo.Model, req sampler.Request) (*sampler.SampleSet, error) {
	blob, err := m.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing model: %w", err)
	}
	fingerprint, err := m.Fingerprint()
	if err != nil {
		return nil, err
	}

	body, err := cbor.Marshal(wireRequest{
		Model:       blob,
		NumReads:    req.Reads(),
		Label:       req.Label,
		Fingerprint: fingerprint[:],
	})
	if err != nil {
		return nil, err
	}
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SamplePath, &compressed)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/cbor")
	httpReq.Header.Set("Content-Encoding", "gzip")

	log := logger.Logger().With().Str("sampler", "client").Str("label", req.Label).Logger()
	log.Debug().Int("reads", req.Reads()).Int("variables", m.NumVariables()).Msg("submitting model")

	httpResp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("oracle round-trip: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	var resp wireResponse
	if httpResp.StatusCode != http.StatusOK {
		if err := cbor.Unmarshal(raw, &resp); err == nil && resp.Error != "" {
			return nil, fmt.Errorf("oracle: %s", resp.Error)
		}
		return nil, fmt.Errorf("oracle: unexpected status %d", httpResp.StatusCode)
	}
	if err := cbor.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding oracle response: %w", err)
	}

	return decodeSampleSet(&resp, m.Variables())
}

func decodeSampleSet(resp *wireResponse, names []string) (*sampler.SampleSet, error) {
	if resp.NumVariables != len(names) {
		return nil, fmt.Errorf("oracle solved %d variables, model has %d", resp.NumVariables, len(names))
	}
	br := bitio.NewReader(bytes.NewReader(resp.Packed))
	set := &sampler.SampleSet{
		Records: make([]sampler.Record, 0, len(resp.Occurrences)),
		Timing:  sampler.Timing{OracleTimeMicros: resp.OracleTimeMicros},
	}
	for _, occ := range resp.Occurrences {
		if occ == 0 {
			return nil, fmt.Errorf("oracle returned a record with zero occurrences")
		}
		asg := make(circuit.Assignment, len(names))
		for _, name := range names {
			b, err := br.ReadBool()
			if err != nil {
				return nil, fmt.Errorf("truncated assignment rows: %w", err)
			}
			if b {
				asg[name] = 1
			} else {
				asg[name] = 0
			}
		}
		set.Records = append(set.Records, sampler.Record{Assignment: asg, Occurrences: occ})
	}
	return set, nil
}
