package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SupplierPath is the REST route of the supplier query, relative to the gateway.
const SupplierPath = "/pokt-network/poktroll/supplier/supplier/"

// DefaultHTTPTimeout bounds a single supplier query.
const DefaultHTTPTimeout = 30 * time.Second

// RESTQuerier reads suppliers from a Cosmos REST gateway.
type RESTQuerier struct {
	endpoint string
	client   *http.Client
}

// NewRESTQuerier creates a querier for the gateway at endpoint. A nil client
// uses one with DefaultHTTPTimeout.
func NewRESTQuerier(endpoint string, client *http.Client) *RESTQuerier {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &RESTQuerier{endpoint: strings.TrimRight(endpoint, "/"), client: client}
}

// Endpoint returns the gateway base URL.
func (q *RESTQuerier) Endpoint() string {
	return q.endpoint
}

type supplierResponse struct {
	Supplier *supplierJSON `json:"supplier"`
}

type supplierJSON struct {
	OwnerAddress    string        `json:"owner_address"`
	OperatorAddress string        `json:"operator_address"`
	Stake           *Coin         `json:"stake"`
	Services        []serviceJSON `json:"services"`
}

type serviceJSON struct {
	ServiceID string         `json:"service_id"`
	Endpoints []endpointJSON `json:"endpoints"`
	RevShare  []revShareJSON `json:"rev_share"`
}

type endpointJSON struct {
	URL     string       `json:"url"`
	RPCType enumValue    `json:"rpc_type"`
	Configs []configJSON `json:"configs"`
}

type configJSON struct {
	Key   enumValue `json:"key"`
	Value string    `json:"value"`
}

type revShareJSON struct {
	Address    string      `json:"address"`
	Percentage flexibleInt `json:"rev_share_percentage"`
}

// Supplier queries the supplier staked with operatorAddress.
func (q *RESTQuerier) Supplier(ctx context.Context, operatorAddress string) (*Supplier, error) {
	if operatorAddress == "" {
		return nil, fmt.Errorf("operator address is required")
	}
	u := q.endpoint + SupplierPath + url.PathEscape(operatorAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, &QueryError{Endpoint: u, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QueryError{Endpoint: u, Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", operatorAddress, ErrSupplierNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &QueryError{Endpoint: u, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var parsed supplierResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &QueryError{Endpoint: u, Message: "failed to parse response: " + err.Error()}
	}
	if parsed.Supplier == nil {
		return nil, fmt.Errorf("%s: %w", operatorAddress, ErrSupplierNotFound)
	}
	return parsed.Supplier.toSupplier(), nil
}

func (s *supplierJSON) toSupplier() *Supplier {
	out := &Supplier{
		OwnerAddress:    s.OwnerAddress,
		OperatorAddress: s.OperatorAddress,
	}
	if s.Stake != nil {
		out.Stake = *s.Stake
	}
	for _, svc := range s.Services {
		sc := ServiceConfig{ServiceID: svc.ServiceID}
		for _, ep := range svc.Endpoints {
			e := Endpoint{URL: ep.URL, RPCType: ep.RPCType.name(rpcTypeNames)}
			for _, c := range ep.Configs {
				e.Configs = append(e.Configs, ConfigOption{Key: c.Key.name(configKeyNames), Value: c.Value})
			}
			sc.Endpoints = append(sc.Endpoints, e)
		}
		for _, rs := range svc.RevShare {
			sc.RevShare = append(sc.RevShare, RevShareEntry{Address: rs.Address, Percentage: uint64(rs.Percentage)})
		}
		out.Services = append(out.Services, sc)
	}
	return out
}

var rpcTypeNames = map[int64]string{
	0: "UNKNOWN_RPC",
	1: "GRPC",
	2: "WEBSOCKET",
	3: "JSON_RPC",
	4: "REST",
	5: "COMET_BFT",
}

var configKeyNames = map[int64]string{
	0: "UNKNOWN_CONFIG",
	1: "TIMEOUT",
}

// enumValue accepts a protobuf enum rendered either by name or by number.
type enumValue struct {
	str    string
	num    int64
	isName bool
}

func (v *enumValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &v.str); err != nil {
			return err
		}
		v.isName = true
		return nil
	}
	return json.Unmarshal(b, &v.num)
}

func (v enumValue) name(names map[int64]string) string {
	if v.isName {
		return v.str
	}
	if n, ok := names[v.num]; ok {
		return n
	}
	return strconv.FormatInt(v.num, 10)
}

// flexibleInt accepts an unsigned integer encoded as a JSON number or string.
type flexibleInt uint64

func (f *flexibleInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || fl < 0 {
			return fmt.Errorf("invalid percentage %q", s)
		}
		n = uint64(fl)
	}
	*f = flexibleInt(n)
	return nil
}

var _ SupplierQuerier = (*RESTQuerier)(nil)
