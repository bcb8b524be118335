// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme_DefaultAccent(t *testing.T) {
	th := NewTheme("")
	if th.Accent != Pitch {
		t.Errorf("default accent = %v, want club green", th.Accent)
	}
}

func TestNewTheme_ConfiguredAccent(t *testing.T) {
	th := NewTheme("#FF8800")
	if th.Accent == Pitch {
		t.Error("configured accent should override the default")
	}
}

func TestRoleStyle(t *testing.T) {
	th := NewTheme("")
	if th.RoleStyle("admin").GetForeground() != Rose {
		t.Error("admin badge should use the alert color")
	}
	if th.RoleStyle("nobody").GetForeground() != TextSecondary {
		t.Error("unknown roles fall back to the member style")
	}
}

func TestPaymentStyle(t *testing.T) {
	th := NewTheme("")
	if th.PaymentStyle("verified").GetForeground() != SuccessHighContrast {
		t.Error("verified payments render green")
	}
	if th.PaymentStyle("anything-else").GetForeground() != WarningHighContrast {
		t.Error("unknown payment states render as pending")
	}
}
