package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/rewards/graph"
	"github.com/born-ml/rewards/rewards"
	"github.com/born-ml/rewards/tensor"
)

const (
	modeEager = "eager"
	modeGraph = "graph"
)

// rewardFile is the layout of one input file. JSON files are read the same
// way since JSON is valid YAML.
type rewardFile struct {
	Reward         yaml.Node      `yaml:"reward"`
	SequenceLength []int          `yaml:"sequence_length,omitempty"`
	Config         rewards.Config `yaml:"config"`
}

// result is printed for every evaluated file.
type result struct {
	File             string      `yaml:"file"`
	DType            string      `yaml:"dtype"`
	DiscountedReward [][]float64 `yaml:"discounted_reward,flow"`
}

func newEvalCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval FILE...",
		Short: "Discount the rewards stored in one or more files",
		Long: `Reads each FILE (YAML or JSON) and prints the discounted rewards.

File layout:
  reward: [1.0, 2.0]          # or [[1, 2, 3], [4, 5, 6]]
  sequence_length: [3, 2]     # required for a list of rewards
  config:                     # optional
    discount: 0.99
    normalize: true
    dtype: float32

Flags override the config stored in the files.

Example:
  discount eval --discount 0.99 --mode graph episode-1.yaml episode-2.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := evaluateFiles(cmd.Context(), cmd, opts, args)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(results); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().Float64Var(&opts.discount, "discount", 1, "Per-step discount factor in (0, 1]")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "Standardize the discounted rewards")
	cmd.Flags().StringVar(&opts.dtype, "dtype", "", "Output dtype (float32 or float64)")
	cmd.Flags().StringVar(&opts.mode, "mode", modeEager, "Execution mode: eager or graph")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of files evaluated concurrently")
	return cmd
}

// evaluateFiles evaluates every path concurrently and returns the results in
// argument order. The first failure cancels files not yet started.
func evaluateFiles(ctx context.Context, cmd *cobra.Command, opts *options, paths []string) ([]result, error) {
	if opts.mode != modeEager && opts.mode != modeGraph {
		return nil, fmt.Errorf("unknown mode %q (want %s or %s)", opts.mode, modeEager, modeGraph)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]result, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		eg.SetLimit(opts.jobs)
	}

	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := evaluateFile(cmd, opts, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	opts.logger.Info("evaluated reward files", zap.Int("files", len(paths)), zap.String("mode", opts.mode))
	return results, nil
}

func evaluateFile(cmd *cobra.Command, opts *options, path string) (result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return result{}, fmt.Errorf("failed to read reward file: %w", err)
	}

	in := rewardFile{Config: rewards.DefaultConfig()}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return result{}, fmt.Errorf("failed to parse reward file: %w", err)
	}

	reward, err := decodeReward(&in.Reward)
	if err != nil {
		return result{}, err
	}
	cfg, err := applyFlags(cmd, opts, in.Config)
	if err != nil {
		return result{}, err
	}

	var lengths *tensor.RawTensor
	if in.SequenceLength != nil {
		if lengths, err = tensor.FromValue(in.SequenceLength); err != nil {
			return result{}, err
		}
	}

	opts.logger.Debug("evaluating reward file",
		zap.String("file", path),
		zap.Ints("shape", reward.Shape()),
		zap.Float64("discount", cfg.Discount),
		zap.Bool("normalize", cfg.Normalize),
		zap.String("mode", opts.mode))

	var out *tensor.RawTensor
	if opts.mode == modeGraph {
		out, err = runGraph(opts.logger, reward, lengths, cfg)
	} else {
		out, err = rewards.DiscountEager(reward, lengths, cfg)
	}
	if err != nil {
		return result{}, err
	}

	return result{File: path, DType: out.DType().String(), DiscountedReward: out.Rows()}, nil
}

// runGraph records the computation with placeholders and evaluates it once.
func runGraph(logger *zap.Logger, reward, lengths *tensor.RawTensor, cfg rewards.Config) (*tensor.RawTensor, error) {
	g := graph.New()
	rNode := g.Placeholder("reward", reward.DType(), reward.Rank())
	feeds := graph.Feeds{rNode: reward}

	var lNode *graph.Node
	if lengths != nil {
		lNode = g.Placeholder("sequence_length", lengths.DType(), lengths.Rank())
		feeds[lNode] = lengths
	}

	cfg.TensorRank = reward.Rank()
	out, err := rewards.DiscountGraph(rNode, lNode, cfg)
	if err != nil {
		return nil, err
	}
	return graph.Run(g, feeds, out, graph.WithLogger(logger))
}

// decodeReward reads the reward as a matrix, falling back to a vector.
func decodeReward(node *yaml.Node) (*tensor.RawTensor, error) {
	if node.Kind == 0 {
		return nil, errors.New("reward file has no reward")
	}

	var matrix [][]float64
	if err := node.Decode(&matrix); err == nil {
		return tensor.FromValue(matrix)
	}
	var vector []float64
	if err := node.Decode(&vector); err != nil {
		return nil, fmt.Errorf("reward must be a list or a list of lists: %w", err)
	}
	return tensor.FromValue(vector)
}

// applyFlags overrides file settings with the flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *options, cfg rewards.Config) (rewards.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("discount") {
		cfg.Discount = opts.discount
	}
	if flags.Changed("normalize") {
		cfg.Normalize = opts.normalize
	}
	if flags.Changed("dtype") {
		dtype, err := tensor.ParseDataType(opts.dtype)
		if err != nil {
			return cfg, err
		}
		cfg.DType = &dtype
	}
	return cfg, nil
}
