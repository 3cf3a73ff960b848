package embed

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/circular"
	"github.com/husonlab/dendroscope3-sub003/pkg/distance"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/taxa"
)

// jointCycle computes a circular order over the taxa of all networks and
// returns it as labels with taxa.OutgroupLabel at position 0, together with
// the taxa not shared by every network.
func jointCycle(ctx context.Context, mode distance.Mode, logger *log.Logger, nets ...*network.Network) ([]string, map[string]bool, error) {
	idx := taxa.FromNetworks(nets...)
	out := idx.AddOutgroup()

	m, err := distance.Build(mode, idx, nets...)
	var cycle []int
	switch {
	case stderrors.Is(err, distance.ErrTooFewTaxa):
		for i := 1; i <= idx.Len(); i++ {
			cycle = append(cycle, i)
		}
	case err != nil:
		return nil, nil, err
	default:
		cycle, err = circular.NeighborNet(ctx, m.D, &circular.Options{Logger: logger})
		if err != nil {
			return nil, nil, err
		}
	}

	cycle = circular.RotateToFront(cycle, out)
	labels := make([]string, len(cycle))
	for i, o := range cycle {
		labels[i] = idx.Label(o)
	}
	excluded := make(map[string]bool)
	if m != nil {
		for _, o := range m.Excluded {
			excluded[idx.Label(o)] = true
		}
	}
	logger.Debug("joint circular order", "mode", mode, "taxa", idx.Len()-1, "excluded", len(excluded))
	return labels, excluded, nil
}

// GlobalOrder returns a linear taxon order for the networks: a circular
// order from the distance matrix of the given mode, cut at the sentinel
// taxon, without taxa that some network lacks.
func GlobalOrder(ctx context.Context, mode distance.Mode, logger *log.Logger, nets ...*network.Network) ([]string, error) {
	if logger == nil {
		logger = log.Default()
	}
	cycle, excluded, err := jointCycle(ctx, mode, logger, nets...)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(cycle))
	for _, label := range cycle[1:] {
		if !excluded[label] {
			order = append(order, label)
		}
	}
	return order, nil
}
