package supplier

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/altuslabsxyz/supplier-ops/internal/allocation"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/keys"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
	"github.com/altuslabsxyz/supplier-ops/internal/servicemap"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

const (
	ownerA    = "pokt1ownera"
	operatorA = "pokt1opa"
	revshareA = "pokt1rsa"
	ownerB    = "pokt1ownerb"
	operatorB = "pokt1opb"
	revshareB = "pokt1rsb"
)

func testWallets(t *testing.T) *wallet.Table {
	t.Helper()
	table, err := wallet.NewTable([]wallet.Record{
		{CustomerID: "cust_a", OwnerAddress: ownerA, OperatorAddress: operatorA, RevShareAddress: revshareA, PubliclyExposedURL: "https://a.example.io"},
		{CustomerID: "cust_b", OwnerAddress: ownerB, OperatorAddress: operatorB, RevShareAddress: revshareB},
		{CustomerID: "cust_c", OwnerAddress: "pokt1ownerc", OperatorAddress: "pokt1opc", RevShareAddress: "pokt1rsc", StakeAmount: "7"},
	})
	require.NoError(t, err)
	return table
}

func sheet(rows ...allocation.Row) *allocation.Sheet {
	return &allocation.Sheet{Columns: []string{"1", "2", "3"}, Rows: rows}
}

func row(chainDesc, nodeType string, counts ...float64) allocation.Row {
	r := allocation.Row{Chain: chainDesc, NodeType: nodeType, Counts: map[string]float64{}}
	for i, c := range counts {
		r.Counts[[]string{"1", "2", "3"}[i]] = c
	}
	return r
}

func generate(t *testing.T, in Inputs, opts Options) ([]Document, string) {
	t.Helper()
	logger, errOut := testLogger()
	g, err := NewGenerator(in, opts, logger)
	require.NoError(t, err)
	docs, err := g.Generate(context.Background())
	require.NoError(t, err)
	return docs, errOut.String()
}

func docFor(t *testing.T, docs []Document, id string) Document {
	t.Helper()
	for _, d := range docs {
		if d.CustomerID == id {
			return d
		}
	}
	t.Fatalf("no document for %s", id)
	return Document{}
}

func TestGenerate_LTailCRowGetsRevShareOverride(t *testing.T) {
	docs, _ := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax"},
		Sheet:   sheet(row("Avalanche (F003)", "LTailC", 0, 3, 0)),
		Wallets: testWallets(t),
	}, Options{RevSharePercent: 20, StakeAmount: "5"})

	require.Len(t, docs, 3)
	require.Empty(t, docFor(t, docs, "cust_a").Config.Services)
	require.Empty(t, docFor(t, docs, "cust_c").Config.Services)

	cfg := docFor(t, docs, "cust_b").Config
	require.Equal(t, "5000000upokt", cfg.StakeAmount)
	require.Equal(t, []Share{{ownerB, 79}, {revshareB, 20}, {operatorB, 1}}, cfg.DefaultRevSharePercent.Shares())
	require.Len(t, cfg.Services, 1)

	svc := cfg.Services[0]
	require.Equal(t, "avax", svc.ServiceID)
	require.Equal(t, []Endpoint{{PubliclyExposedURL: wallet.DefaultPublicURL, RPCType: wallet.DefaultRPCType}}, svc.Endpoints)
	require.Equal(t, []Share{{revshareB, 100}}, svc.RevSharePercent.Shares())
}

func TestGenerate_HTCRowHasNoOverride(t *testing.T) {
	docs, _ := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax"},
		Sheet:   sheet(row("Avalanche (F003)", "HTC", 0, 3, 0)),
		Wallets: testWallets(t),
	}, Options{RevSharePercent: 20, StakeAmount: "5"})

	cfg := docFor(t, docs, "cust_b").Config
	require.Len(t, cfg.Services, 1)
	require.True(t, cfg.Services[0].RevSharePercent.IsZero())

	out, err := yaml.Marshal(cfg.Services[0])
	require.NoError(t, err)
	require.NotContains(t, string(out), "rev_share_percent")
}

func TestGenerate_UnmappedCodeIsDiagnosedAndSkipped(t *testing.T) {
	docs, warnings := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax"},
		Sheet: sheet(
			row("Avalanche (F003)", "LTailC", 1, 0, 0),
			row("Mystery (BEEF)", "LTailC", 1, 0, 0),
			row("No code here", "HTC", 1, 0, 0),
		),
		Wallets: testWallets(t),
	}, Options{StakeAmount: "1"})

	a := docFor(t, docs, "cust_a")
	require.Equal(t, []string{"avax"}, a.Config.ServiceIDs())
	require.Equal(t, []string{"BEEF", "No code here"}, a.Unmapped)
	require.Contains(t, warnings, "BEEF")
	require.Contains(t, warnings, operatorA)
}

func TestGenerate_OneServicePerAllocatedRow(t *testing.T) {
	docs, _ := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax", "0021": "eth", "0009": "poly"},
		Sheet: sheet(
			row("Avalanche (F003)", "LTailC", 1, 0, 2),
			row("Ethereum (0021)", "HTC", 4, 1, 0),
			row("Polygon (0009)", "LTailC", 0, 0, 5),
			row("Ethereum archival (0021)", "LTailC", 1, 0, 0),
		),
		Wallets: testWallets(t),
	}, Options{StakeAmount: "1"})

	require.Equal(t, []string{"avax", "eth"}, docFor(t, docs, "cust_a").Config.ServiceIDs())
	require.Equal(t, []string{"eth"}, docFor(t, docs, "cust_b").Config.ServiceIDs())
	require.Equal(t, []string{"avax", "poly"}, docFor(t, docs, "cust_c").Config.ServiceIDs())
}

func TestGenerate_DocumentCountIsMinOfColumnsAndWallets(t *testing.T) {
	table, err := wallet.NewTable(testWallets(t).Records()[:2])
	require.NoError(t, err)

	docs, warnings := generate(t, Inputs{
		Sheet:   sheet(row("Avalanche (F003)", "HTC", 1, 1, 1)),
		Wallets: table,
	}, Options{StakeAmount: "1"})
	require.Len(t, docs, 2)
	require.Contains(t, warnings, "no wallet data found for column 3")
}

func TestGenerate_RejectedWalletKeepsItsColumn(t *testing.T) {
	good := func(seed byte) string {
		addr, err := keys.EncodeAddress(bytes.Repeat([]byte{seed}, 20))
		require.NoError(t, err)
		return addr
	}
	csvData := "customer_id,operator_address,owner_address\n" +
		"c1," + good(1) + "," + good(2) + "\n" +
		"c2," + good(3) + ",cosmos1typo\n" +
		"c3," + good(5) + "," + good(6) + "\n"
	logger, _ := testLogger()
	table, err := wallet.ReadTable(strings.NewReader(csvData), logger)
	require.NoError(t, err)

	docs, warnings := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax", "0021": "eth", "0009": "poly"},
		Sheet: sheet(
			row("Avalanche (F003)", "HTC", 1, 0, 0),
			row("Ethereum (0021)", "HTC", 0, 1, 0),
			row("Polygon (0009)", "HTC", 0, 0, 1),
		),
		Wallets: table,
	}, Options{StakeAmount: "1"})

	require.Len(t, docs, 2)
	require.Equal(t, "1", docFor(t, docs, "c1").Column)
	require.Equal(t, []string{"avax"}, docFor(t, docs, "c1").Config.ServiceIDs())
	require.Equal(t, "3", docFor(t, docs, "c3").Column)
	require.Equal(t, []string{"poly"}, docFor(t, docs, "c3").Config.ServiceIDs())
	require.Contains(t, warnings, "column 2: wallet c2 was rejected")
}

func TestGenerate_Idempotent(t *testing.T) {
	in := Inputs{
		Mapping: servicemap.Mapping{"F003": "avax", "0021": "eth"},
		Sheet: sheet(
			row("Ethereum (0021)", "HTC", 1, 1, 1),
			row("Avalanche (F003)", "LTailC", 1, 0, 1),
		),
		Wallets: testWallets(t),
	}
	opts := Options{RevSharePercent: 30, StakeAmount: "10"}

	dir1, dir2 := t.TempDir(), t.TempDir()
	first, _ := generate(t, in, opts)
	second, _ := generate(t, in, opts)
	logger, _ := testLogger()
	paths1, err := WriteAll(dir1, first, logger)
	require.NoError(t, err)
	_, err = WriteAll(dir2, second, logger)
	require.NoError(t, err)

	for _, p := range paths1 {
		a, err := os.ReadFile(p)
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir2, filepath.Base(p)))
		require.NoError(t, err)
		require.Equal(t, string(a), string(b))
	}
}

func TestGenerate_RevShareSumsTo100(t *testing.T) {
	for _, pct := range []int{0, 1, 20, 50, 99, 100} {
		docs, _ := generate(t, Inputs{
			Sheet:   sheet(row("Avalanche (F003)", "HTC", 1, 1, 1)),
			Wallets: testWallets(t),
		}, Options{RevSharePercent: pct, StakeAmount: "1"})
		for _, d := range docs {
			require.NoError(t, d.Config.DefaultRevSharePercent.Validate(), "percent %d", pct)
			for _, s := range d.Config.Services {
				if !s.RevSharePercent.IsZero() {
					require.NoError(t, s.RevSharePercent.Validate())
				}
			}
		}
	}
}

func TestGenerate_StakePriority(t *testing.T) {
	docs, warnings := generate(t, Inputs{
		Sheet:   sheet(row("Avalanche (F003)", "HTC", 1, 1, 1)),
		Wallets: testWallets(t),
	}, Options{})

	require.Len(t, docs, 1)
	require.Equal(t, "cust_c", docs[0].CustomerID)
	require.Equal(t, "7000000upokt", docs[0].Config.StakeAmount)
	require.Contains(t, warnings, "customer cust_a: no stake amount")

	docs, _ = generate(t, Inputs{
		Sheet:   sheet(row("Avalanche (F003)", "HTC", 1, 1, 1)),
		Wallets: testWallets(t),
	}, Options{StakeAmount: "2"})
	require.Equal(t, "2000000upokt", docFor(t, docs, "cust_a").Config.StakeAmount)
	require.Equal(t, "7000000upokt", docFor(t, docs, "cust_c").Config.StakeAmount)
}

func TestNewGenerator_Validation(t *testing.T) {
	logger, _ := testLogger()
	_, err := NewGenerator(Inputs{Sheet: sheet(), Wallets: testWallets(t)}, Options{RevSharePercent: 150}, logger)
	require.Error(t, err)

	_, err = NewGenerator(Inputs{Sheet: sheet(), Wallets: testWallets(t)}, Options{StakeAmount: "lots"}, logger)
	require.Error(t, err)

	empty, err := wallet.NewTable(nil)
	require.NoError(t, err)
	_, err = NewGenerator(Inputs{Sheet: sheet(), Wallets: empty}, Options{}, logger)
	require.ErrorIs(t, err, ErrNoWallets)
}

type fakeQuerier struct {
	suppliers map[string]*chain.Supplier
	errs      map[string]error
	calls     []string
}

func (f *fakeQuerier) Supplier(_ context.Context, operator string) (*chain.Supplier, error) {
	f.calls = append(f.calls, operator)
	if err, ok := f.errs[operator]; ok {
		return nil, err
	}
	if s, ok := f.suppliers[operator]; ok {
		return s, nil
	}
	return nil, chain.ErrSupplierNotFound
}

func TestGenerate_SeedsPriorServices(t *testing.T) {
	q := &fakeQuerier{
		suppliers: map[string]*chain.Supplier{
			operatorA: {
				OwnerAddress:    ownerA,
				OperatorAddress: operatorA,
				Stake:           chain.Coin{Denom: "upokt", Amount: "60000000000"},
				Services: []chain.ServiceConfig{{
					ServiceID: "avax",
					Endpoints: []chain.Endpoint{{
						URL:     "https://old.example.io",
						RPCType: "REST",
						Configs: []chain.ConfigOption{{Key: "TIMEOUT", Value: "30"}},
					}},
					RevShare: []chain.RevShareEntry{{Address: ownerA, Percentage: 50}, {Address: operatorA, Percentage: 50}},
				}},
			},
		},
		errs: map[string]error{
			operatorB: &chain.QueryError{Endpoint: "x", StatusCode: 500, Message: "boom"},
		},
	}

	docs, warnings := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax", "0021": "eth"},
		Sheet: sheet(
			row("Avalanche (F003)", "LTailC", 1, 1, 1),
			row("Ethereum (0021)", "HTC", 1, 1, 1),
		),
		Wallets: testWallets(t),
	}, Options{Querier: q, Pacer: pacer.New(0, nil)})

	require.Equal(t, []string{operatorA, operatorB, "pokt1opc"}, q.calls)
	require.Contains(t, warnings, "failed to fetch supplier "+operatorB)

	a := docFor(t, docs, "cust_a").Config
	require.Equal(t, "60000000000upokt", a.StakeAmount)
	require.Equal(t, []string{"avax", "eth"}, a.ServiceIDs())
	require.Equal(t, Endpoint{
		PubliclyExposedURL: "https://old.example.io",
		RPCType:            "REST",
		Configs:            map[string]string{"timeout": "30"},
	}, a.Services[0].Endpoints[0])
	require.Equal(t, []Share{{ownerA, 50}, {operatorA, 50}}, a.Services[0].RevSharePercent.Shares())

	for _, d := range docs {
		require.NotEqual(t, "cust_b", d.CustomerID)
	}
	require.Equal(t, "7000000upokt", docFor(t, docs, "cust_c").Config.StakeAmount)
}

func TestGenerate_PacesQueries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := &fakeQuerier{}
	logger, _ := testLogger()
	g, err := NewGenerator(Inputs{
		Sheet:   sheet(row("Avalanche (F003)", "HTC", 1, 1, 1)),
		Wallets: testWallets(t),
	}, Options{StakeAmount: "1", Querier: q, Pacer: pacer.New(2*time.Second, clock)}, logger)
	require.NoError(t, err)

	done := make(chan []Document, 1)
	go func() {
		docs, err := g.Generate(context.Background())
		if err != nil {
			docs = nil
		}
		done <- docs
	}()

	for i := 0; i < 2; i++ {
		require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
		clock.Advance(2 * time.Second)
	}
	docs := <-done
	require.Len(t, docs, 3)
	require.Len(t, q.calls, 3)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	logger, _ := testLogger()
	g, err := NewGenerator(Inputs{
		Sheet:   sheet(row("Avalanche (F003)", "HTC", 1, 1, 1)),
		Wallets: testWallets(t),
	}, Options{StakeAmount: "1"}, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestWriteAll_FilesNamedAfterCustomer(t *testing.T) {
	docs, _ := generate(t, Inputs{
		Mapping: servicemap.Mapping{"F003": "avax"},
		Sheet:   sheet(row("Avalanche (F003)", "LTailC", 1, 0, 0)),
		Wallets: testWallets(t),
	}, Options{RevSharePercent: 20, StakeAmount: "5"})

	dir := filepath.Join(t.TempDir(), "output")
	logger, _ := testLogger()
	paths, err := WriteAll(dir, docs, logger)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "cust_a.yml"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	text := string(data)

	order := []string{"owner_address:", "operator_address:", "stake_amount:", "default_rev_share_percent:", "services:"}
	last := -1
	for _, key := range order {
		i := strings.Index(text, key)
		require.Greater(t, i, last, key)
		last = i
	}
	require.Less(t, strings.Index(text, ownerA+": 79"), strings.Index(text, revshareA+": 20"))
	require.Contains(t, text, "publicly_exposed_url: https://a.example.io")

	cfg, err := LoadConfig(paths[0])
	require.NoError(t, err)
	require.Equal(t, docs[0].Config.ServiceIDs(), cfg.ServiceIDs())
	require.Equal(t, docs[0].Config.DefaultRevSharePercent.Shares(), cfg.DefaultRevSharePercent.Shares())
}

func TestWriteAll_SkipsPathLikeIDs(t *testing.T) {
	dir := t.TempDir()
	logger, errOut := testLogger()
	paths, err := WriteAll(dir, []Document{
		{CustomerID: "first", Column: "1", Config: &Config{}},
		{CustomerID: "../escape", Column: "2", Config: &Config{}},
		{CustomerID: "third", Column: "3", Config: &Config{}},
	}, logger)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "first.yml"), filepath.Join(dir, "third.yml")}, paths)
	require.Contains(t, errOut.String(), `customer id "../escape" cannot be used as a file name`)

	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.yml"))
	require.True(t, os.IsNotExist(err))
}
