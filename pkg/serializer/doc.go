// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package serializer encodes and decodes portfolio data in JSON, YAML and
// table form.
//
// Writers are used by the data manager CLI for backups and console output;
// readers load backups back in. Table output is write-only.
//
//	w, err := serializer.NewFileWriter(serializer.FormatJSON, "backup/projects.json")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, docs); err != nil {
//		return err
//	}
//
// For HTTP responses, RespondJSON buffers the encoding so that a failure never
// leaves a partially written body:
//
//	serializer.RespondJSON(w, http.StatusOK, projects)
package serializer
