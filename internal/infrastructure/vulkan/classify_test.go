package vulkan

import (
	"testing"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func exts(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func TestClassify(t *testing.T) {
	display := exts(extDisplay)

	tests := []struct {
		name     string
		adapters []adapter
		instance map[string]bool
		want     entity.SecondaryAPIInfo
	}{
		{
			name:     "integrated only",
			adapters: []adapter{{name: "Intel UHD", vendorID: 0x8086, extensions: exts(extSwapchain, extExternalMemory, extExternalSync)}},
			instance: display,
			want:     entity.SecondaryAPIInfo{APIName: "Vulkan", AdapterName: "Intel UHD"},
		},
		{
			name:     "nvidia with display and sharing",
			adapters: []adapter{{name: "RTX 4070", vendorID: vendorNVIDIA, extensions: exts(extSwapchain, extExternalMemory, extExternalSync)}},
			instance: display,
			want: entity.SecondaryAPIInfo{
				APIName: "Vulkan", AdapterName: "RTX 4070",
				HasNvAdapter: true, HasNvStereoSupport: true, HasShareExtension: true,
			},
		},
		{
			name:     "nvidia without display extension",
			adapters: []adapter{{name: "RTX 4070", vendorID: vendorNVIDIA, extensions: exts(extSwapchain)}},
			instance: exts(),
			want:     entity.SecondaryAPIInfo{APIName: "Vulkan", AdapterName: "RTX 4070", HasNvAdapter: true},
		},
		{
			name: "amd second adapter names the report",
			adapters: []adapter{
				{name: "Intel UHD", vendorID: 0x8086, extensions: exts(extSwapchain)},
				{name: "Radeon Pro W7600", vendorID: vendorAMD, extensions: exts(extSwapchain)},
			},
			instance: display,
			want: entity.SecondaryAPIInfo{
				APIName: "Vulkan", AdapterName: "Radeon Pro W7600",
				HasAmdAdapter: true, HasAqbsSupport: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.adapters, tt.instance)
			assert.Equal(t, tt.want, *got)
		})
	}
}
