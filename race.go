// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package mpmc

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent channel tests, which trigger false
// positives because atomix operations are invisible to the detector.
const RaceEnabled = true
