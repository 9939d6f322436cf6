package gpu

import (
	"math"
	"reflect"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// webGL2Limits is the downlevel baseline every WebGL2-class adapter can serve: no storage
// buffers or textures, no compute, 16 KiB uniform bindings.
func webGL2Limits() wgpu.Limits {
	limits := wgpu.DefaultLimits()

	limits.MaxTextureDimension1D = 2048
	limits.MaxTextureDimension2D = 2048
	limits.MaxTextureDimension3D = 256
	limits.MaxTextureArrayLayers = 256
	limits.MaxBindGroups = 4
	limits.MaxBindingsPerBindGroup = 1000
	limits.MaxDynamicUniformBuffersPerPipelineLayout = 8
	limits.MaxDynamicStorageBuffersPerPipelineLayout = 0
	limits.MaxSampledTexturesPerShaderStage = 16
	limits.MaxSamplersPerShaderStage = 16
	limits.MaxStorageBuffersPerShaderStage = 0
	limits.MaxStorageTexturesPerShaderStage = 0
	limits.MaxUniformBuffersPerShaderStage = 11
	limits.MaxUniformBufferBindingSize = 16 << 10
	limits.MaxStorageBufferBindingSize = 0
	limits.MinUniformBufferOffsetAlignment = 256
	limits.MinStorageBufferOffsetAlignment = 256
	limits.MaxVertexBuffers = 8
	limits.MaxBufferSize = 256 << 20
	limits.MaxVertexAttributes = 16
	limits.MaxVertexBufferArrayStride = 255
	limits.MaxColorAttachments = 8
	limits.MaxColorAttachmentBytesPerSample = 32
	limits.MaxComputeWorkgroupStorageSize = 0
	limits.MaxComputeInvocationsPerWorkgroup = 0
	limits.MaxComputeWorkgroupSizeX = 0
	limits.MaxComputeWorkgroupSizeY = 0
	limits.MaxComputeWorkgroupSizeZ = 0
	limits.MaxComputeWorkgroupsPerDimension = 0

	return limits
}

// deviceLimits returns the limits requested from the device: the WebGL2 baseline capped to
// what the adapter supports, with the texture dimensions raised to the adapter's so a large
// window can still be presented.
func deviceLimits(supported wgpu.Limits) wgpu.Limits {
	limits := webGL2Limits()
	limits.MaxTextureDimension1D = supported.MaxTextureDimension1D
	limits.MaxTextureDimension2D = supported.MaxTextureDimension2D
	return capLimits(limits, supported)
}

// capLimits lowers every Max* limit of requested to the supported value and raises every
// Min* alignment to it. Limits left undefined in requested take the supported value.
func capLimits(requested, supported wgpu.Limits) wgpu.Limits {
	req := reflect.ValueOf(&requested).Elem()
	sup := reflect.ValueOf(supported)

	for i := 0; i < req.NumField(); i++ {
		field := req.Field(i)
		if !field.CanSet() {
			continue
		}

		var undefined uint64
		switch field.Kind() {
		case reflect.Uint32:
			undefined = math.MaxUint32
		case reflect.Uint64:
			undefined = math.MaxUint64
		default:
			continue
		}

		want, have := field.Uint(), sup.Field(i).Uint()
		if want == undefined {
			field.SetUint(have)
			continue
		}
		if have == undefined {
			continue
		}

		if strings.HasPrefix(req.Type().Field(i).Name, "Min") {
			field.SetUint(max(want, have))
		} else {
			field.SetUint(min(want, have))
		}
	}

	return requested
}
