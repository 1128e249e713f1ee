// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package acir

import (
	"bytes"
	"encoding/gob"
)

func init() {
	gob.Register(Arithmetic{})
	gob.Register(BlackBoxFuncCall{})
}

// Encode serialises this circuit into the bytecode form handed to backends and
// embedded in build artifacts.
func (p *Circuit) Encode() ([]byte, error) {
	var buffer bytes.Buffer
	//
	if err := gob.NewEncoder(&buffer).Encode(p); err != nil {
		return nil, err
	}
	//
	return buffer.Bytes(), nil
}

// DecodeCircuit deserialises a circuit from its bytecode form.
func DecodeCircuit(bytecode []byte) (Circuit, error) {
	var circuit Circuit
	//
	err := gob.NewDecoder(bytes.NewReader(bytecode)).Decode(&circuit)
	//
	return circuit, err
}
