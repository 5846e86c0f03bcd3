// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/manifoldco/promptui"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/utils"
)

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInvalidChoice = errors.New("invalid choice")
)

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.ParseAddress(strings.TrimSpace(input))
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	recipient = strings.TrimSpace(recipient)
	return codec.ParseAddress(recipient)
}

func ID(label string) (ids.ID, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := ids.FromString(strings.TrimSpace(input))
			return err
		},
	}
	rawID, err := promptText.Run()
	if err != nil {
		return ids.Empty, err
	}
	return ids.FromString(strings.TrimSpace(rawID))
}

// Continue asks the user to confirm. It returns false if they decline.
func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label:    "continue (y/n)",
		Validate: validateYesNo,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	if !isYes(rawContinue) {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}

func validateYesNo(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}

func isYes(input string) bool {
	return strings.ToLower(input) == "y"
}
