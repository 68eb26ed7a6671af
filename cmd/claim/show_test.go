package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/detail"
)

func TestShowCmd_Public(t *testing.T) {
	b := newFakeBackend(t)
	setupConfig(t, b)
	b.addClaim(submittedClaim("c1"), "")

	out, err := execute(t, showCmd(), "", "c1")
	require.NoError(t, err)

	requireContains(t, out,
		"Taxi to airport",
		"Submitted",
		"receipt.png",
		b.srv.URL+"/storage/p1",
		"claim withdraw c1",
	)
	assert.NotContains(t, out, "claim finish c1")
	assert.NotContains(t, out, "CH9300762011623852957", "the IBAN is masked")
}

func TestShowCmd_PromptsAndRemembersPassword(t *testing.T) {
	b := newFakeBackend(t)
	setupConfig(t, b)
	b.addClaim(submittedClaim("c1"), "pw")

	out, err := execute(t, showCmd(), "wrong\npw\n", "c1", "--no-chart")
	require.NoError(t, err)
	requireContains(t, out, "Password for claim c1", "Wrong password, try again.", "Taxi to airport")

	out, err = execute(t, showCmd(), "", "c1", "--no-prompt", "--no-chart")
	require.NoError(t, err)
	assert.Contains(t, out, "Taxi to airport")
	assert.NotContains(t, out, "Password for claim")
}

func TestShowCmd_PasswordRequired(t *testing.T) {
	b := newFakeBackend(t)
	setupConfig(t, b)
	b.addClaim(submittedClaim("c1"), "pw")

	out, err := execute(t, showCmd(), "", "c1", "--no-prompt")
	require.Error(t, err)
	assert.Equal(t, detail.MessagePasswordRequired, common.UserMessage(err))
	assert.NotContains(t, out, "Taxi to airport")

	_, err = execute(t, showCmd(), "", "c1", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, detail.MessagePasswordRequired, common.UserMessage(err))
}

func TestShowCmd_NotFound(t *testing.T) {
	b := newFakeBackend(t)
	setupConfig(t, b)

	_, err := execute(t, showCmd(), "", "missing")
	require.Error(t, err)
	assert.Equal(t, "claim not found", common.UserMessage(err))
}

func TestShowCmd_InvalidZoom(t *testing.T) {
	b := newFakeBackend(t)
	setupConfig(t, b)

	_, err := execute(t, showCmd(), "", "c1", "--zoom", "huge")
	require.Error(t, err)
	assert.Equal(t, "Invalid zoom", common.UserMessage(err))
}
