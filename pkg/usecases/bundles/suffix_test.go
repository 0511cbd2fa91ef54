// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bundles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBundleSuffix(t *testing.T) {
	cases := map[string]bool{
		"":          false,
		"lproj":     false,
		"pass":      false,
		"1":         false,
		"12":        false,
		"1.2":       false,
		"framework": true,
		"app":       true,
		"bundle":    true,
		"appex":     true,
		"mp3":       true,
	}
	for suffix, expected := range cases {
		assert.Equal(t, expected, IsBundleSuffix(suffix), "suffix %q", suffix)
	}
}

func TestSuffixAndLocaleName(t *testing.T) {
	assert.Equal(t, "framework", Suffix("/S/L/F/UIKit.framework"))
	assert.Equal(t, "", Suffix("/S/L/F/UIKit.framework/Resources"))
	assert.Equal(t, "en", LocaleName("/x/en.lproj"))
	assert.Equal(t, "zh_CN", LocaleName("zh_CN.lproj"))
	assert.True(t, IsLocaleDir("/x/en.lproj"))
	assert.False(t, IsLocaleDir("/x/Resources"))
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"/a/b/c", "/a/b", "/a"}, ancestors("/a/b/c", 3))
	assert.Equal(t, []string{"/a", "/"}, ancestors("/a", 5))
}

func TestPlanStringsOwner(t *testing.T) {
	plan := PlanStringsOwner("/S/L/F/Fwk.framework/Resources/en.lproj")
	assert.Equal(t, "/S/L/F/Fwk.framework", plan.Owner)
	assert.Empty(t, plan.Fallbacks)

	// Version directories are skipped on the way up.
	plan = PlanStringsOwner("/S/L/F/Fwk.framework/Versions/1/Resources/en.lproj")
	assert.Equal(t, "/S/L/F/Fwk.framework", plan.Owner)

	// Passes are never bundles.
	plan = PlanStringsOwner("/S/L/Wallet.bundle/Card.pass/en.lproj")
	assert.Equal(t, "/S/L/Wallet.bundle", plan.Owner)
}

func TestPlanStringsOwnerDepthLimit(t *testing.T) {
	// Fwk.framework is the sixth ancestor and out of reach.
	plan := PlanStringsOwner("/Fwk.framework/a/b/c/d/en.lproj")
	assert.Empty(t, plan.Owner)
	assert.Equal(t, []string{"/Fwk.framework/a/b/c/d", "/Fwk.framework/a/b/c"}, plan.Fallbacks)

	plan = PlanStringsOwner("/Fwk.framework/a/b/c/d/en.lproj/x")
	assert.Empty(t, plan.Owner)
	assert.Empty(t, plan.Fallbacks, "fallbacks only apply to locale directories")
}

func TestPlanLoctableOwner(t *testing.T) {
	assert.Equal(t, "/S/Fwk.framework", PlanLoctableOwner("/S/Fwk.framework").Owner)
	assert.Equal(t, "/S/Fwk.framework", PlanLoctableOwner("/S/Fwk.framework/en.lproj").Owner)
}
