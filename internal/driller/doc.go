// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller extracts values from report rows with dot paths so that
// attributes and filters can address per-version fields.
package driller
