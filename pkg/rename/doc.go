// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package rename runs one batch rename over a single folder.

A run goes through four stages:

 1. enumerate lists the folder and keeps the entries to act on, in a stable order
 2. naming proposes a new name for each entry
 3. guard drops proposals whose destination is already taken
 4. execute performs (or, in dry-run mode, only reports) the remaining renames in parallel

Example usage:

	cfg := config.Default()
	cfg.Folder = "./photos"
	cfg.Prefix = "holiday"
	cfg.PaddingWidth = 3

	report, err := rename.Run(ctx, cfg, rename.WithReporter(log.New(os.Stdout, false)))
	if err != nil {
		return errors.Errorf("renaming: %w", err)
	}
	if report.HasFailures() {
		// some renames failed; the others were still applied
	}
*/
package rename
