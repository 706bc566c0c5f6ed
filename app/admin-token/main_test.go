package main

import (
	"bytes"
	"strings"
	"testing"

	"partyPredictor/pkg/utils"
)

func TestRootCmd_MintsParseableToken(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--secret", "s3cret", "--subject", "ops", "--ttl", "1h"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	claims, err := utils.ParseJWT("s3cret", strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != "ops" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRootCmd_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	tests := []struct {
		name string
		args []string
	}{
		{"no secret", []string{}},
		{"zero ttl", []string{"--secret", "s", "--ttl", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Fatal("expected error, got nil")
			}
			if out.Len() != 0 {
				t.Errorf("printed a token on failure: %q", out.String())
			}
		})
	}
}
