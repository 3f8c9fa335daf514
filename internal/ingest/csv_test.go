package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"waternet/internal/network"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestFromDirectory_BuildsNetwork(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Reservoir.csv", "name,municipality,id,code,max_delivery\nLake,Porto,1,R1,10\r\n")
	writeFile(t, dir, "Stations.csv", "id,code\n1,S1\r\n")
	writeFile(t, dir, "Cities.csv", "name,id,code,demand,population\nTown,1,C1,10,1000\r\n")
	writeFile(t, dir, "Pipes.csv", "service_point_A,service_point_B,capacity,direction\nR1,S1,10,1\nS1,C1,10,1\n")

	n, err := FromDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, 3, n.VertexCount())
	require.Equal(t, 2, n.EdgeCount())

	r, ok := n.FindVertex("R1")
	require.True(t, ok)
	require.Equal(t, network.KindReservoir, r.Kind)
	require.InDelta(t, 10, r.MaxDelivery, network.Epsilon)
}

func TestFromDirectory_MissingCategoryIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Reservoir.csv", "name,municipality,id,code,max_delivery\n")
	writeFile(t, dir, "Stations.csv", "id,code\n")
	writeFile(t, dir, "Cities.csv", "name,id,code,demand,population\n")

	_, err := FromDirectory(dir)
	require.Error(t, err)
}

func TestFromDirectory_DuplicateCategoryIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Reservoir.csv", "name,municipality,id,code,max_delivery\n")
	writeFile(t, dir, "ReservoirBackup.csv", "name,municipality,id,code,max_delivery\n")
	writeFile(t, dir, "Stations.csv", "id,code\n")
	writeFile(t, dir, "Cities.csv", "name,id,code,demand,population\n")
	writeFile(t, dir, "Pipes.csv", "service_point_A,service_point_B,capacity,direction\n")

	_, err := FromDirectory(dir)
	require.Error(t, err)
}

func TestFromDirectory_BlankKeySkipsRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Reservoir.csv", "name,municipality,id,code,max_delivery\nLake,Porto,1,,10\n")
	writeFile(t, dir, "Stations.csv", "id,code\n")
	writeFile(t, dir, "Cities.csv", "name,id,code,demand,population\n")
	writeFile(t, dir, "Pipes.csv", "service_point_A,service_point_B,capacity,direction\n")

	n, err := FromDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, 0, n.VertexCount())
}

func TestFromDirectory_BidirectionalPipePairsReverses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Reservoir.csv", "name,municipality,id,code,max_delivery\nLake,Porto,1,R1,10\n")
	writeFile(t, dir, "Stations.csv", "id,code\n1,S1\n")
	writeFile(t, dir, "Cities.csv", "name,id,code,demand,population\nTown,1,C1,10,1000\n")
	writeFile(t, dir, "Pipes.csv", "service_point_A,service_point_B,capacity,direction\nR1,S1,10,1\nS1,C1,5,0\n")

	n, err := FromDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, 3, n.EdgeCount())
	require.Len(t, n.Pipes, 2)

	// S1<->C1 is stored as edges 1 and 2, each the other's reverse.
	require.Equal(t, 2, n.EdgeAt(1).Reverse)
	require.Equal(t, 1, n.EdgeAt(2).Reverse)
}
