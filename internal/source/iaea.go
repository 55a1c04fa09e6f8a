package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
)

// DefaultBaseURL is the IAEA LiveChart data API.
const DefaultBaseURL = "https://nds.iaea.org/relnsd/v1/data"

// IAEA fetches payloads live from the IAEA chart of nuclides API.
type IAEA struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewIAEA returns a live source. An empty baseURL selects DefaultBaseURL.
func NewIAEA(baseURL string, timeout time.Duration, userAgent string) *IAEA {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &IAEA{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// NewIAEAWithClient returns a live source that issues requests through client.
func NewIAEAWithClient(baseURL string, client *http.Client, userAgent string) *IAEA {
	s := NewIAEA(baseURL, 0, userAgent)
	s.client = client
	return s
}

// Name implements Source.
func (s *IAEA) Name() string { return "iaea" }

// Fetch implements Source.
func (s *IAEA) Fetch(ctx context.Context, id nuclide.ID, rad decay.RadType) (string, error) {
	q := url.Values{}
	q.Set("fields", "decay_rads")
	q.Set("nuclides", id.APIName())
	q.Set("rad_types", rad.Code())

	body, err := s.get(ctx, q)
	if err != nil {
		return "", fmt.Errorf("fetching %s %s: %w", id.Name(), rad, err)
	}
	return body, nil
}

// Available implements Source. The API lists ground states independent of
// radiation type; every unstable one is returned.
func (s *IAEA) Available(ctx context.Context, _ decay.RadType) ([]nuclide.ID, error) {
	q := url.Values{}
	q.Set("fields", "ground_states")
	q.Set("nuclides", "all")

	body, err := s.get(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetching ground states: %w", err)
	}
	return parseGroundStates(body)
}

func (s *IAEA) get(ctx context.Context, q url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	// The API rejects requests without a browser-like or named agent.
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := readPayload(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	body := string(data)
	// Unknown nuclides come back as an empty body or a bare "0".
	if t := strings.TrimSpace(body); t == "" || t == "0" {
		return "", ErrNotFound
	}
	return body, nil
}

// parseGroundStates reads the ground_states CSV and keeps unstable nuclides.
func parseGroundStates(body string) ([]nuclide.ID, error) {
	r := csv.NewReader(strings.NewReader(body))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading ground states header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	zi, zok := cols["z"]
	ni, nok := cols["n"]
	hi, hok := cols["half_life"]
	if !zok || !nok || !hok {
		return nil, fmt.Errorf("ground states payload is missing z, n or half_life")
	}

	var ids []nuclide.ID
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ground states: %w", err)
		}
		if len(fields) <= max(zi, ni, hi) {
			continue
		}
		hl := strings.TrimSpace(fields[hi])
		if hl == "" || strings.EqualFold(hl, "STABLE") {
			continue
		}
		z, errZ := strconv.Atoi(strings.TrimSpace(fields[zi]))
		n, errN := strconv.Atoi(strings.TrimSpace(fields[ni]))
		sym := nuclide.Symbol(z)
		if errZ != nil || errN != nil || sym == "" || z+n < 1 {
			continue
		}
		ids = append(ids, nuclide.ID{Symbol: sym, Mass: z + n})
	}
	return sortIDs(ids), nil
}
