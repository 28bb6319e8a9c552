package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/canopy-network/canopy/lib/blsms"
)

const (
	benchmarkPromptText = "Run a benchmark"
	schemePromptText    = "Run which scheme"
	bitLenPromptText    = "What's the bit length of 'ell' for OUR-MS? A multiple of 8 (0 - 64)"
	roundsPromptText    = "Run benchmark for how many rounds"
	signersPromptText   = "How many MS signers"
)

var schemeChoices = []string{"both", "BDN-MS only", "OUR-MS only"}

// promptConfig asks the run questions on the terminal and fills cfg
func promptConfig(cfg *blsms.Config) error {
	benchmark, err := confirm(benchmarkPromptText)
	if err != nil {
		return err
	}
	cfg.Benchmark = benchmark

	cfg.Scheme = blsms.SchemeBoth
	if benchmark {
		sel := promptui.Select{Label: schemePromptText, Items: schemeChoices}
		idx, _, err := sel.Run()
		if err != nil {
			return err
		}
		switch idx {
		case 1:
			cfg.Scheme = string(blsms.SchemeBDN)
		case 2:
			cfg.Scheme = string(blsms.SchemeOurMS)
		}
	}

	if cfg.Scheme != string(blsms.SchemeBDN) {
		if cfg.BitLen, err = promptInt(bitLenPromptText, cfg.BitLen, validateBitLen); err != nil {
			return err
		}
	}

	if benchmark {
		if cfg.Rounds, err = promptInt(roundsPromptText, cfg.Rounds, validatePositive); err != nil {
			return err
		}
	}

	cfg.Signers, err = promptInt(signersPromptText, cfg.Signers, validatePositive)
	return err
}

func confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := p.Run(); err != nil {
		// promptui reports a declined confirmation as ErrAbort.
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func promptInt(label string, def int, validate promptui.ValidateFunc) (int, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  strconv.Itoa(def),
		Validate: validate,
	}
	input, err := p.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(input))
}

func validatePositive(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("not a number: %s", input)
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateBitLen(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("not a number: %s", input)
	}
	return blsms.ValidateBitLength(n)
}
