package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"cssel/capability"
	"cssel/config"
	"cssel/selector"
	"cssel/state"
)

func capabilityNames() []string {
	return capability.Names()
}

func buildSelector(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	ch := selector.NewChain()
	if v := cmd.String("tag"); len(v) > 0 {
		ch = ch.Tag(v)
	}
	if v := cmd.String("id"); len(v) > 0 {
		ch = ch.ID(v)
	}
	for _, v := range cmd.StringSlice("class") {
		ch = ch.Class(v)
	}
	for _, v := range cmd.StringSlice("attr") {
		ch = ch.Attribute(v)
	}
	for _, v := range cmd.StringSlice("pseudo-class") {
		ch = ch.PseudoClass(v)
	}
	if v := cmd.String("pseudo-element"); len(v) > 0 {
		ch = ch.PseudoElement(v)
	}

	f, err := ch.Build()
	if err != nil {
		return fmt.Errorf("unable to build selector: %w", err)
	}
	if f.Empty() {
		return errors.New("no selector segments requested")
	}

	env.Log.Debug("Built selector", zap.String("selector", f.String()))
	fmt.Println(f.String())
	return nil
}

func checkSelectors(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	strict := env.Strict || cmd.Bool("strict")

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); len(line) > 0 {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("unable to read selectors from stdin: %w", err)
		}
	}
	if len(inputs) == 0 {
		return errors.New("no selectors to check")
	}

	p := selector.NewParser(env.Log)

	var bad int
	var verdicts strings.Builder
	for _, in := range inputs {
		f, err := p.Parse(in)
		if err != nil {
			bad++
			fmt.Printf("BAD  %s: %v\n", in, err)
			fmt.Fprintf(&verdicts, "BAD\t%s\t%v\n", in, err)
			if strict {
				break
			}
			continue
		}
		fmt.Printf("OK   %s\n", f.String())
		fmt.Fprintf(&verdicts, "OK\t%s\n", f.String())
	}
	env.Rpt.StoreData("check/verdicts.txt", []byte(verdicts.String()))

	env.Log.Debug("Checked selectors", zap.Int("total", len(inputs)), zap.Int("invalid", bad))
	if bad > 0 {
		return fmt.Errorf("%d invalid selector(s)", bad)
	}
	return nil
}

func joinSelectors(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() != 2 {
		return errors.New("join needs exactly two selectors")
	}

	op := env.Combinator
	if name := cmd.String("with"); len(name) > 0 {
		var err error
		if op, err = selector.ParseCombinatorName(name); err != nil {
			return fmt.Errorf("unable to resolve combinator: %w", err)
		}
	}

	p := selector.NewParser(env.Log)
	left, err := p.Parse(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("unable to parse left selector: %w", err)
	}
	right, err := p.Parse(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("unable to parse right selector: %w", err)
	}

	f, err := selector.Combine(left, op, right)
	if err != nil {
		return fmt.Errorf("unable to join selectors: %w", err)
	}

	env.Log.Debug("Joined selectors", zap.String("combinator", op.Name()), zap.String("selector", f.String()))
	fmt.Println(f.String())
	return nil
}

// readInput reads the file named by the first argument, or STDIN when no
// argument is given.
func readInput(cmd *cli.Command) ([]byte, error) {
	if cmd.Args().Len() > 1 {
		return nil, errors.New("too many input files")
	}
	if fname := cmd.Args().Get(0); len(fname) > 0 {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, fmt.Errorf("unable to read input file '%s': %w", fname, err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("unable to read input from stdin: %w", err)
	}
	return data, nil
}

func encodeValue(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	data, err := readInput(cmd)
	if err != nil {
		return err
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unable to decode input value: %w", err)
	}

	text, err := capability.Serialize(v)
	if err != nil {
		return fmt.Errorf("unable to encode value: %w", err)
	}

	env.Log.Debug("Encoded value", zap.Int("input", len(data)), zap.Int("output", len(text)))
	fmt.Println(text)
	return nil
}

func decodeValue(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	set, ok := capability.Lookup(cmd.String("as"))
	if !ok {
		return fmt.Errorf("unknown capability set '%s' (registered: %s)", cmd.String("as"), strings.Join(capability.Names(), ", "))
	}

	data, err := readInput(cmd)
	if err != nil {
		return err
	}

	v, err := capability.Deserialize(set, string(data))
	if err != nil {
		return fmt.Errorf("unable to decode value: %w", err)
	}

	text, err := capability.Serialize(v)
	if err != nil {
		return fmt.Errorf("unable to render decoded value: %w", err)
	}

	env.Log.Debug("Decoded value", zap.String("capability", v.Capability()))
	fmt.Printf("%s: %s\n", v.Capability(), text)
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
