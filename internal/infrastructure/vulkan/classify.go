package vulkan

import "github.com/bnema/pageflip/internal/domain/entity"

// PCI vendor ids.
const (
	vendorNVIDIA uint32 = 0x10de
	vendorAMD    uint32 = 0x1002
)

const (
	extDisplay        = "VK_KHR_display"
	extSwapchain      = "VK_KHR_swapchain"
	extExternalMemory = "VK_KHR_external_memory_fd"
	extExternalSync   = "VK_KHR_external_semaphore_fd"
)

type adapter struct {
	name       string
	vendorID   uint32
	extensions map[string]bool
}

// stereoCapable reports whether the adapter can drive an exclusive
// fullscreen display surface.
func (a adapter) stereoCapable(instanceExts map[string]bool) bool {
	return instanceExts[extDisplay] && a.extensions[extSwapchain]
}

func (a adapter) canShare() bool {
	return a.extensions[extExternalMemory] && a.extensions[extExternalSync]
}

// classify folds the adapters into one report. The first stereo-capable
// vendor adapter names the report; otherwise the first adapter does.
func classify(adapters []adapter, instanceExts map[string]bool) *entity.SecondaryAPIInfo {
	info := &entity.SecondaryAPIInfo{APIName: apiName}
	if len(adapters) > 0 {
		info.AdapterName = adapters[0].name
	}

	named := false
	for _, a := range adapters {
		stereo := a.stereoCapable(instanceExts)
		switch a.vendorID {
		case vendorNVIDIA:
			info.HasNvAdapter = true
			info.HasNvStereoSupport = info.HasNvStereoSupport || stereo
		case vendorAMD:
			info.HasAmdAdapter = true
			info.HasAqbsSupport = info.HasAqbsSupport || stereo
		default:
			continue
		}
		if a.canShare() {
			info.HasShareExtension = true
		}
		if stereo && !named {
			info.AdapterName = a.name
			named = true
		}
	}
	return info
}
