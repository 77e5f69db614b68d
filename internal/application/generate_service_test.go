package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
)

const allocationCSV = `Chains,Node Type,StakeNodes,1,2,Total
Avalanche (F003),LTailC,5,0,3,3
Ethereum (0021),HTC,2,1,1,2
Unknown (BEEF),HTC,1,1,0,1
Totals,,8,2,4,6
`

func setupGenerate(t *testing.T) (dto.GenerateInput, []string) {
	t.Helper()
	dir := t.TempDir()
	o1, p1, r1 := addr(t, 1), addr(t, 2), addr(t, 3)
	o2, p2, r2 := addr(t, 4), addr(t, 5), addr(t, 6)

	wallets := filepath.Join(dir, "wallets.csv")
	require.NoError(t, os.WriteFile(wallets, []byte(
		"customer_id,operator_address,owner_address,revshare_address,publicly_exposed_url,stake_amount\n"+
			"c1,"+p1+","+o1+","+r1+",https://rm1.example.io,\n"+
			"c2,"+p2+","+o2+","+r2+",,5\n"), 0600))

	alloc := filepath.Join(dir, "NodeAllocation.csv")
	require.NoError(t, os.WriteFile(alloc, []byte(allocationCSV), 0600))

	mapping := filepath.Join(dir, "mapping.csv")
	require.NoError(t, os.WriteFile(mapping, []byte("Morse_Chain_Id,Shannon_Service_id\nF003,avax\n0021,eth\n"), 0600))

	return dto.GenerateInput{
		WalletsPath:     wallets,
		AllocationPath:  alloc,
		MappingPath:     mapping,
		OutputDir:       filepath.Join(dir, "output"),
		RevSharePercent: 20,
		StakeAmount:     "60000",
	}, []string{p1, p2}
}

func TestGenerateService_Execute(t *testing.T) {
	in, _ := setupGenerate(t)
	logger, logs := testLogger()

	out, err := NewGenerateService(nil, nil, logger).Execute(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out.Files, 2)
	require.Equal(t, filepath.Join(in.OutputDir, "c1.yml"), out.Files[0])

	c1, err := supplier.LoadConfig(out.Files[0])
	require.NoError(t, err)
	require.Equal(t, "60000000000upokt", c1.StakeAmount)
	require.Equal(t, []string{"eth"}, c1.ServiceIDs())
	require.Equal(t, "https://rm1.example.io", c1.Services[0].Endpoints[0].PubliclyExposedURL)

	c2, err := supplier.LoadConfig(out.Files[1])
	require.NoError(t, err)
	require.Equal(t, "5000000upokt", c2.StakeAmount)
	require.Equal(t, []string{"avax", "eth"}, c2.ServiceIDs())
	require.Equal(t, 1, c2.Services[0].RevSharePercent.Len())
	require.True(t, c2.Services[1].RevSharePercent.IsZero())

	require.Contains(t, logs.String(), "BEEF")
}

func TestGenerateService_PriorState(t *testing.T) {
	in, operators := setupGenerate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, operators[0]) {
			w.Write([]byte(`{"supplier":{"owner_address":"x","operator_address":"` + operators[0] + `","stake":{"denom":"upokt","amount":"1"},"services":[{"service_id":"base","endpoints":[{"url":"https://old.io","rpc_type":"JSON_RPC"}],"rev_share":[{"address":"x","rev_share_percentage":"100"}]}]}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	in.WithPriorState = true
	logger, _ := testLogger()
	svc := NewGenerateService(chain.NewRESTQuerier(server.URL, nil), pacer.New(0, nil), logger)
	out, err := svc.Execute(context.Background(), in)
	require.NoError(t, err)

	c1, err := supplier.LoadConfig(out.Files[0])
	require.NoError(t, err)
	require.Equal(t, []string{"base", "eth"}, c1.ServiceIDs())
}

func TestGenerateService_MissingWalletsIsFatal(t *testing.T) {
	in, _ := setupGenerate(t)
	in.WalletsPath = filepath.Join(t.TempDir(), "missing.csv")
	logger, _ := testLogger()
	_, err := NewGenerateService(nil, nil, logger).Execute(context.Background(), in)
	require.Error(t, err)
}
