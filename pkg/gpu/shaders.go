package gpu

// VertexShaderSource rasterizes the volume's bounding box. The cube mesh is
// a unit cube centered at the origin; scaling by volume_size puts its faces
// on the volume bounds, and the interpolated world position of each covered
// fragment is the ray entry point for the march.
const VertexShaderSource = `#version 410 core

layout(location = 0) in vec3 in_position;

layout(std140) uniform Camera {
    mat4 view_projection;
    mat4 view;
    mat4 projection;
    vec3 position;
    float padding;
} camera;

uniform vec3 volume_size;

out vec3 world_pos;

void main() {
    world_pos = in_position * volume_size;
    gl_Position = camera.view_projection * vec4(world_pos, 1.0);
}
`

// FragmentShaderSource marches the scalar field. It is the GPU twin of the
// CPU loop in pkg/marcher: same step length, same bounds margin, same fixed
// 200-step budget with the budget checked before sampling.
const FragmentShaderSource = `#version 410 core

#define MAX_STEPS 200

layout(std140) uniform Camera {
    mat4 view_projection;
    mat4 view;
    mat4 projection;
    vec3 position;
    float padding;
} camera;

uniform sampler3D volume;
uniform vec3 volume_size;
uniform float threshold;
uniform vec3 light_position;

in vec3 world_pos;
out vec4 frag_color;

vec3 calculate_lighting(vec3 base_color, float metallic, float roughness,
                        float occlusion, vec3 p, vec3 n) {
    vec3 light_dir = normalize(light_position - p);
    vec3 view_dir = normalize(camera.position - p);
    vec3 half_dir = normalize(light_dir + view_dir);

    float ndotl = max(dot(n, light_dir), 0.0);
    float ndoth = max(dot(n, half_dir), 0.0);

    vec3 diffuse = base_color * ndotl * (1.0 - metallic);

    float shininess = 2.0 + 510.0 * pow(1.0 - roughness, 2.0);
    float spec_strength = pow(ndoth, shininess);
    vec3 spec_color = mix(vec3(1.0), base_color, metallic);
    vec3 specular = spec_color * spec_strength * (1.0 - roughness * 0.5);

    vec3 ambient = base_color * 0.15 * occlusion;

    return ambient + diffuse + specular;
}

vec3 reinhard_tone_mapping(vec3 c) {
    return c / (vec3(1.0) + c);
}

vec3 srgb_from_rgb(vec3 c) {
    c = clamp(c, 0.0, 1.0);
    bvec3 low = lessThanEqual(c, vec3(0.0031308));
    vec3 linear_part = c * 12.92;
    vec3 gamma_part = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
    return mix(gamma_part, linear_part, vec3(low));
}

void main() {
    float step_len = length(volume_size) / float(MAX_STEPS);
    vec3 step_vec = normalize(world_pos - camera.position) * step_len;
    vec3 limit = volume_size * 0.501;

    vec3 p = world_pos;
    for (int i = 0; i < MAX_STEPS; i++) {
        if (i == MAX_STEPS - 1 || any(greaterThanEqual(abs(p), limit))) {
            frag_color = vec4(0.0);
            return;
        }

        float value = texture(volume, p / volume_size + 0.5).r;
        if (value >= threshold) {
            vec3 lit = calculate_lighting(vec3(1.0, 0.5, 0.5), 0.5, 0.6, 1.0,
                                          p, vec3(0.0, 1.0, 0.0));
            frag_color = vec4(srgb_from_rgb(reinhard_tone_mapping(lit)), 1.0);
            return;
        }

        p += step_vec;
    }

    frag_color = vec4(0.0);
}
`
