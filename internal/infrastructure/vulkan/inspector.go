// Package vulkan inspects the Vulkan loader to answer what the secondary
// graphics API can do for stereo output.
package vulkan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
	vk "github.com/goki/vulkan"
)

const apiName = "Vulkan"

var (
	loaderOnce sync.Once
	loaderErr  error
)

// Inspector enumerates physical devices on a short-lived instance.
type Inspector struct {
	// procAddr, when set, replaces the system loader lookup. GLFW provides
	// one through GetVulkanGetInstanceProcAddress.
	procAddr func() error
}

var _ port.SecondaryAPIInspector = (*Inspector)(nil)

// NewInspector uses the default libvulkan loader.
func NewInspector() *Inspector {
	return &Inspector{}
}

// NewInspectorWithLoader uses setProcAddr to install the loader entry
// point before vk.Init.
func NewInspectorWithLoader(setProcAddr func() error) *Inspector {
	return &Inspector{procAddr: setProcAddr}
}

func (i *Inspector) loadOnce() error {
	loaderOnce.Do(func() {
		if i.procAddr != nil {
			loaderErr = i.procAddr()
		} else {
			loaderErr = vk.SetDefaultGetInstanceProcAddr()
		}
		if loaderErr == nil {
			loaderErr = vk.Init()
		}
	})
	return loaderErr
}

// Inspect returns nil info when no Vulkan loader or device is present.
func (i *Inspector) Inspect(ctx context.Context) (*entity.SecondaryAPIInfo, error) {
	log := logging.FromContext(ctx)

	type answer struct {
		info *entity.SecondaryAPIInfo
		err  error
	}
	result := make(chan answer, 1)
	go func() {
		info, err := i.inspect()
		result <- answer{info: info, err: err}
	}()

	select {
	case a := <-result:
		if errors.Is(a.err, errNoLoader) {
			log.Debug().Err(a.err).Msg("vulkan loader unavailable")
			return nil, nil
		}
		return a.info, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var errNoLoader = errors.New("vulkan loader unavailable")

func (i *Inspector) inspect() (*entity.SecondaryAPIInfo, error) {
	if err := i.loadOnce(); err != nil {
		return nil, fmt.Errorf("%w: %v", errNoLoader, err)
	}

	instanceExts, err := instanceExtensions()
	if err != nil {
		return nil, err
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         vk.MakeVersion(1, 0, 0),
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PApplicationName:   "pageflip\x00",
			PEngineName:        "pageflip\x00",
		},
	}, nil, &instance)
	if err := vkError("vkCreateInstance", ret); err != nil {
		return nil, err
	}
	defer vk.DestroyInstance(instance, nil)
	if err := vk.InitInstance(instance); err != nil {
		return nil, fmt.Errorf("vulkan instance init: %w", err)
	}

	adapters, err := physicalDevices(instance)
	if err != nil {
		return nil, err
	}
	if len(adapters) == 0 {
		return nil, nil
	}
	return classify(adapters, instanceExts), nil
}

func physicalDevices(instance vk.Instance) ([]adapter, error) {
	var count uint32
	if err := vkError("vkEnumeratePhysicalDevices", vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	gpus := make([]vk.PhysicalDevice, count)
	if err := vkError("vkEnumeratePhysicalDevices", vk.EnumeratePhysicalDevices(instance, &count, gpus)); err != nil {
		return nil, err
	}

	adapters := make([]adapter, 0, count)
	for _, gpu := range gpus[:count] {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(gpu, &props)
		props.Deref()

		exts, err := deviceExtensions(gpu)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter{
			name:       vk.ToString(props.DeviceName[:]),
			vendorID:   props.VendorID,
			extensions: exts,
		})
	}
	return adapters, nil
}

func instanceExtensions() (map[string]bool, error) {
	var count uint32
	if err := vkError("vkEnumerateInstanceExtensionProperties", vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := vkError("vkEnumerateInstanceExtensionProperties", vk.EnumerateInstanceExtensionProperties("", &count, list)); err != nil {
		return nil, err
	}
	return extensionSet(list), nil
}

func deviceExtensions(gpu vk.PhysicalDevice) (map[string]bool, error) {
	var count uint32
	if err := vkError("vkEnumerateDeviceExtensionProperties", vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := vkError("vkEnumerateDeviceExtensionProperties", vk.EnumerateDeviceExtensionProperties(gpu, "", &count, list)); err != nil {
		return nil, err
	}
	return extensionSet(list), nil
}

func extensionSet(list []vk.ExtensionProperties) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, ext := range list {
		ext.Deref()
		set[vk.ToString(ext.ExtensionName[:])] = true
	}
	return set
}

func vkError(call string, ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return fmt.Errorf("%s: VkResult %d", call, int32(ret))
}
