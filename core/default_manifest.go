package core

import "github.com/smarty/stager/contracts"

// DefaultManifest describes the wasmtime C API release staged when no
// manifest file is given.
func DefaultManifest() contracts.Manifest {
	return contracts.Manifest{
		Release: contracts.ReleaseSpec{
			BaseURL: "https://github.com/bytecodealliance/wasmtime/releases/download/v{version}/",
			Version: "2.0.0",
		},
		Artifacts: []contracts.PlatformArtifact{
			{Archive: "wasmtime-v{version}-x86_64-mingw-c-api.zip", Platform: "windows-x86_64", Host: "windows/amd64"},
			{Archive: "wasmtime-v{version}-x86_64-linux-c-api.tar.xz", Platform: "linux-x86_64", Host: "linux/amd64"},
			{Archive: "wasmtime-v{version}-x86_64-macos-c-api.tar.xz", Platform: "macos-x86_64", Host: "darwin/amd64"},
			{Archive: "wasmtime-v{version}-aarch64-linux-c-api.tar.xz", Platform: "linux-aarch64", Host: "linux/arm64"},
			{Archive: "wasmtime-v{version}-aarch64-macos-c-api.tar.xz", Platform: "macos-aarch64", Host: "darwin/arm64"},
		},
	}
}
